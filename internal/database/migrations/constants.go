package migrations

const (
	LogMsgApplied    = "Applied migration"
	LogMsgUpToDate   = "Database schema up to date"
	LogMsgRolledBack = "Rolled back migration"

	ErrFmtProvider = "create migration provider: %w"
	ErrFmtApply    = "apply migrations: %w"
	ErrFmtVersion  = "read schema version: %w"
	ErrFmtRollback = "roll back migration: %w"
)
