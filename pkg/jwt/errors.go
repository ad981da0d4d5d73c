package jwt

import "errors"

var (
	ErrMalformedToken    = errors.New("jwt: malformed token")
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrMissingSubject    = errors.New("jwt: missing subject")
)
