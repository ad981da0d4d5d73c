package tokenstore

import "errors"

var (
	// ErrNotFound indicates the slot is empty.
	ErrNotFound = errors.New("tokenstore.not_found")

	// ErrEmptyKey indicates a call with an empty key.
	ErrEmptyKey = errors.New("tokenstore.empty_key")

	// ErrUnavailable wraps backend failures (network, protocol).
	ErrUnavailable = errors.New("tokenstore.unavailable")
)
