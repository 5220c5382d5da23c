package snapshot

import "errors"

// Snapshot store errors
var (
	// ErrMissingKind indicates that a kind configured as required failed to fetch
	ErrMissingKind = errors.New("required entity kind is missing")

	// ErrNothingFetched indicates that every entity kind failed to fetch
	ErrNothingFetched = errors.New("no entity kind could be fetched")

	// ErrNotLoaded indicates that the store has not received a snapshot yet
	ErrNotLoaded = errors.New("snapshot is not loaded")

	// ErrKindMismatch indicates that a record was put into a collection of another kind
	ErrKindMismatch = errors.New("entity kind does not match collection")
)
