// Package validation проверяет учетные данные операторов сервера.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Имена пользователей совместимы с удаленным API: буквы, цифры и @ . + - _
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

const (
	maxUsernameLen = 150
	minPasswordLen = 12
)

var (
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrInvalidUsername = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrWeakPassword    = fmt.Errorf("password must be at least %d characters long", minPasswordLen)
)

func ValidateUsername(username string) error {
	switch {
	case username == "":
		return ErrEmptyUsername
	case utf8.RuneCountInString(username) > maxUsernameLen:
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLen)
	case !usernamePattern.MatchString(username):
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword применяется только при создании учетной записи администратора,
// вход существующих пользователей не ограничивается
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return ErrWeakPassword
	}
	return nil
}
