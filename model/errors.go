package model

import "errors"

// Error taxonomy shared by the domain packages. Wrap with fmt.Errorf
// and %w, check with errors.Is.
var (
	// ErrNotFound means a song key is absent from the current catalog.
	ErrNotFound = errors.New("not found")
	// ErrValidation means malformed rating input.
	ErrValidation = errors.New("invalid input")
	// ErrStorage means a file read or write failed. Reads recover to
	// defaults before callers ever see this; writes log and swallow it.
	ErrStorage = errors.New("storage failure")
)
