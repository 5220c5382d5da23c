package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no token is saved for the server
	ErrSessionNotFound = errors.New("session not found")
)
