package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	Name   string  `validate:"required,max=32,playername"`
	Amount float64 `validate:"gt=0,max=1000"`
}

func TestValidator_PlayerName(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		player  string
		wantErr bool
	}{
		{"ascii", "alice", false},
		{"hangul", "용사", false},
		{"with underscore and parens", "a_(b)^", false},
		{"exactly max length", strings.Repeat("a", 32), false},

		{"over max length", strings.Repeat("a", 33), true},
		{"empty", "", true},
		{"blank", "   ", true},
		{"punctuation", "bob!", true},
		{"with newline", "bo\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(TestStruct{Name: tt.player, Amount: 1})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Amount(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		amount  float64
		wantErr bool
	}{
		{"positive", 10, false},
		{"at max", 1000, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"over max", 1000.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(TestStruct{Name: "alice", Amount: tt.amount})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(TestStruct{Name: "bob!", Amount: 0})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid player name", fields["name"])
	assert.Equal(t, "Must be greater than 0", fields["amount"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
