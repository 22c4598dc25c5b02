package guild

import "errors"

// Error message constants
const (
	ErrMsgAlreadyMember     = "player is already a guild member"
	ErrMsgNotMember         = "player is not a guild member"
	ErrMsgInviteDeclined    = "guild invite declined"
	ErrMsgNoInvite          = "no pending guild invite"
	ErrMsgInviteRateLimited = "too many guild invites"
)

var (
	ErrAlreadyMember     = errors.New(ErrMsgAlreadyMember)
	ErrNotMember         = errors.New(ErrMsgNotMember)
	ErrInviteDeclined    = errors.New(ErrMsgInviteDeclined)
	ErrNoInvite          = errors.New(ErrMsgNoInvite)
	ErrInviteRateLimited = errors.New(ErrMsgInviteRateLimited)
)
