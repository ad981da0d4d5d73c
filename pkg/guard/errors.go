package guard

import "errors"

var (
	// ErrInvalidSession wraps every reason a stored token cannot be used.
	ErrInvalidSession = errors.New("guard: invalid session")
	ErrTokenExpired   = errors.New("guard: token expired")
)
