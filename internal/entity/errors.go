package entity

import "errors"

var (
	// ErrNotFound marks lookups of unknown posts, results or users.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input: empty content, empty or unknown
	// platform ids, disallowed upload types.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState marks status transitions that would violate the
	// forward-only lifecycle, e.g. publishing a post that already left draft.
	ErrInvalidState = errors.New("invalid state")
)
