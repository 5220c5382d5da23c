package validation

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
		{name: "plain", username: "dispatcher"},
		{name: "single char", username: "a"},
		{name: "email like", username: "anna.berg@example.org"},
		{name: "plus and dash", username: "ops+night-shift"},
		{name: "unicode letters", username: "jürgen"},
		{name: "empty", username: "", wantErr: ErrEmptyUsername},
		{name: "space", username: "anna berg", wantErr: ErrInvalidUsername},
		{name: "slash", username: "ops/admin", wantErr: ErrInvalidUsername},
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

	t.Run("too long", func(t *testing.T) {
		assert.NoError(t, ValidateUsername(strings.Repeat("a", maxUsernameLen)))
		err := ValidateUsername(strings.Repeat("a", maxUsernameLen+1))
		assert.EqualError(t, err, "username must not exceed 150 characters")
	})
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword(""), ErrEmptyPassword)
	assert.ErrorIs(t, ValidatePassword("short-pass1"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("admin-password-1"))
	// длина считается в символах, а не в байтах
	assert.ErrorIs(t, ValidatePassword("пароль12345"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("пароль-из-12"))
}
