package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailable        = "Server is temporarily unavailable. Please try again later."
	ErrMsgPlayerOffline      = "Player is not online"
	ErrMsgPlayerNotFound     = "Player not found"
	ErrMsgGuildNotFound      = "Guild not found"
	ErrMsgNotReady           = "Player is still logging in"
)

// Log messages
const (
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgRequestFailed   = "Request failed"
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgExperienceGrant = "Granted experience"
	LogMsgKillReported    = "Kill reported"
	LogMsgPVPKillReported = "PVP kill reported"
)

// Readiness statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Leaderboard bounds
const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)
