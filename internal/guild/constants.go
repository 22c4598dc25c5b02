package guild

import "time"

// Defaults
const (
	DefaultInviteTimeout = 10 * time.Minute
	DefaultInviteRate    = 1.0
	DefaultInviteBurst   = 5

	// LimiterIdleTTL is how long an invitor's limiter is kept after last use
	LimiterIdleTTL = 30 * time.Minute
)

// Log messages
const (
	LogMsgAddConflict     = "Add to guild: player already a member"
	LogMsgRemoveConflict  = "Remove from guild: player is not a member"
	LogMsgInviteExpired   = "Guild invite expired"
	LogMsgInviteSent      = "Guild invite sent"
	LogMsgInviteDeclined  = "Guild invite declined"
	LogMsgMemberJoined    = "Guild member joined"
	LogMsgMemberLeft      = "Guild member left"
	LogMsgInviteLimited   = "Guild invite rate limited"
	LogMsgGuildsLoaded    = "Guilds loaded"
	LogMsgGuildCreated    = "Guild created"
	LogMsgPublishFailed   = "Failed to publish guild event"
	LogMsgInviteNotActive = "Guild reply without a live invite"
	LogMsgInvitesSwept    = "Expired stale guild invites"
)
