package repositories

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by a different
	// user. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken signals a duplicate registration email.
	ErrEmailTaken = errors.New("email already registered")
)
