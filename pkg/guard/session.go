package guard

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/portalguard/pkg/jwt"
)

// SessionState classifies the content of the token slot.
type SessionState uint8

const (
	// SessionNone: the slot is absent or empty.
	SessionNone SessionState = iota
	SessionValid
	// SessionInvalid: the slot holds an expired or undecodable token.
	SessionInvalid
)

func (s SessionState) String() string {
	switch s {
	case SessionNone:
		return "none"
	case SessionValid:
		return "valid"
	case SessionInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// DecodeFunc extracts claims from a token string. jwt.Decode satisfies it.
type DecodeFunc func(token string) (jwt.Claims, error)

// Evaluate classifies token at time now; a nil decode means jwt.Decode.
// A token without an exp claim is valid. The returned error is non-nil only
// for SessionInvalid and wraps ErrInvalidSession together with either the
// decode error or ErrTokenExpired.
func Evaluate(token string, decode DecodeFunc, now time.Time) (SessionState, error) {
	state, _, err := evaluate(token, decode, now)
	return state, err
}

func evaluate(token string, decode DecodeFunc, now time.Time) (SessionState, jwt.Claims, error) {
	if token == "" {
		return SessionNone, jwt.Claims{}, nil
	}
	if decode == nil {
		decode = jwt.Decode
	}

	claims, err := decode(token)
	if err != nil {
		return SessionInvalid, jwt.Claims{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if claims.Expired(now) {
		return SessionInvalid, claims, fmt.Errorf("%w: %w", ErrInvalidSession, ErrTokenExpired)
	}
	return SessionValid, claims, nil
}
