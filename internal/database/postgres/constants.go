package postgres

import "time"

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Slot layout
const (
	// WeaponSlot is the player_equipment row holding the weapon
	WeaponSlot = 0
	// MaxPetSlots bounds the pet slots read at login
	MaxPetSlots = 3
)

// Guild lookup cache
const (
	// GuildCacheSchemaVersion invalidates cached entries when the record shape changes
	GuildCacheSchemaVersion = "1.0"
	DefaultGuildCacheSize   = 256
	DefaultGuildCacheTTL    = 10 * time.Minute
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)
