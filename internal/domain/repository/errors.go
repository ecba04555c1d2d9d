package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	// It backs the pre-insert existence checks: two concurrent creates race
	// on check-then-insert, and the loser surfaces here.
	ErrDuplicate = errors.New("duplicate key")
)
