package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"

	// Guild errors
	ErrMsgGuildNotFound  = "guild not found"
	ErrMsgGuildNameTaken = "guild name already taken"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Container errors
	ErrMsgSlotOutOfRange = "slot index out of range"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	ErrGuildNotFound  = errors.New(ErrMsgGuildNotFound)
	ErrGuildNameTaken = errors.New(ErrMsgGuildNameTaken)

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrSlotOutOfRange = errors.New(ErrMsgSlotOutOfRange)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
