package store

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is owned by a
	// different user. Callers must not distinguish the two cases.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account.
	ErrDuplicateEmail = errors.New("email already registered")
)
