package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{"plain", "reviewer", nil},
		{"allowed punctuation", "a.b@c+d-e_f", nil},
		{"single char", "x", nil},
		{"max length", strings.Repeat("u", UsernameMaxLength), nil},
		{"reserved", "me", ErrReservedUsername},
		{"space", "john doe", ErrUsernameChars},
		{"slash", "john/doe", ErrUsernameChars},
		{"empty", "", ErrUsernameChars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateUsername_TooLong(t *testing.T) {
	assert.Error(t, ValidateUsername(strings.Repeat("u", UsernameMaxLength+1)))
}

// "Me" is not the reserved path segment; only the exact lowercase name is.
func TestValidateUsername_ReservedIsCaseSensitive(t *testing.T) {
	assert.NoError(t, ValidateUsername("Me"))
}
