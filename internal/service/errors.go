package service

import "errors"

var (
	// ErrValidation marks malformed input: an empty user name, a
	// zero-minute adjustment. No state changes.
	ErrValidation = errors.New("validation failed")

	// ErrNotAllowed marks a login name rejected by the allow-list.
	ErrNotAllowed = errors.New("user not allowed")
)
