package repositories

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist locally.
	ErrNotFound = errors.New("not found")

	// ErrLockHeld is returned when a reconciliation lock for a scope key is
	// already taken by another caller.
	ErrLockHeld = errors.New("sync lock already held")
)
