package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned when a bootstrap continuation finds the
	// session destroyed or its context cancelled
	ErrSessionClosed = errors.New("session closed")
	// ErrNotReady is returned by gameplay operations before bootstrap completes
	ErrNotReady = errors.New("session not ready")
	// ErrAlreadyBootstrapped is returned when Bootstrap is called twice
	ErrAlreadyBootstrapped = errors.New("session already bootstrapped")
	// ErrNotAdmin is returned for administrative commands without the capability
	ErrNotAdmin = errors.New("admin capability required")
	// ErrNoWeapon is returned when enchanting without an equipped weapon
	ErrNoWeapon = errors.New("no weapon equipped")
	// ErrNotConsumable is returned when eating an item kind with no effect
	ErrNotConsumable = errors.New("item is not consumable")
	// ErrItemMismatch is returned when the inventory slot does not hold the requested kind
	ErrItemMismatch = errors.New("inventory slot holds a different item")
	// ErrUnknownAchievement is returned for achievement ids outside the catalog
	ErrUnknownAchievement = errors.New("unknown achievement")
)

// BootstrapError reports the phase whose read failed
type BootstrapError struct {
	Phase Phase
	Err   error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf(ErrFmtBootstrap, e.Phase, e.Err)
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}
