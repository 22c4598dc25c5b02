package item

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read items config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse items config: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoItemsDefined = "no items defined"
)

// These format strings are used with fmt.Errorf for detailed error messages
const (
	ErrFmtDuplicateKind   = "%w: kind %d"
	ErrFmtEmptyName       = "%w: item kind %d has empty name"
	ErrFmtNegativeLevel   = "%w: item '%s' has negative level"
	ErrFmtUnknownCategory = "%w: item '%s' has unknown category %q"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Item catalog loaded"
)
