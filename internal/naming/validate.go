package naming

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName is returned for display names that fail validation
var ErrInvalidName = errors.New("invalid name")

// ValidateName checks a candidate display name. Blank names are rejected,
// as is any rune outside Hangul syllables, Hangul compatibility jamo, ASCII
// letters and digits, space, underscore, parentheses and caret.
func ValidateName(name string) error {
	name = Normalize(name)
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}

	for _, r := range name {
		if !allowed(r) {
			return ErrInvalidName
		}
	}
	return nil
}

// Normalize returns the NFC form of name so that composed and decomposed
// Hangul compare equal
func Normalize(name string) string {
	return norm.NFC.String(name)
}

func allowed(r rune) bool {
	switch {
	case r >= 0xAC00 && r <= 0xD7A3:
		return true
	case r >= 0x3131 && r <= 0x318E:
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case ' ', '_', '(', ')', '^':
		return true
	}
	return false
}
