package repository

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a name or email is already taken.
	ErrDuplicateUser = errors.New("user name or email already registered")
	// ErrVersionConflict is returned when an update carries a stale version.
	ErrVersionConflict = errors.New("user was modified concurrently")
)
