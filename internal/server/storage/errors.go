package storage

import (
	"errors"
	"fmt"
)

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrNotFound indicates that a plan record was not found
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference indicates that a record points to a missing parent
	ErrInvalidReference = errors.New("invalid reference")

	// ErrConstraint indicates that the record is still referenced and cannot be deleted
	ErrConstraint = errors.New("constraint violation")
)

// ConstraintError описывает нарушение связи с указанием поля записи.
// Пустое Field означает ошибку записи целиком.
type ConstraintError struct {
	Err     error // ErrInvalidReference или ErrConstraint
	Field   string
	Message string
}

func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Field, e.Message)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
