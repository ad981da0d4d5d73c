package jwt

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims represents the registered claims of a decoded token.
// Temporal claims are nil when the token does not carry them.
type Claims struct {
	ID        string         // jti
	Subject   string         // sub
	Issuer    string         // iss
	Audience  []string       // aud
	ExpiresAt *time.Time     // exp
	NotBefore *time.Time     // nbf
	IssuedAt  *time.Time     // iat
	Extra     map[string]any // every non-registered claim
}

// Expired reports whether the expiration time lies strictly before now.
// A token without an exp claim never expires.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now)
}

var registered = map[string]struct{}{
	"jti": {}, "sub": {}, "iss": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {},
}

// unverified only decodes segments; padded payloads are accepted.
var unverified = gojwt.NewParser(gojwt.WithPaddingAllowed())

// Decode extracts the claims of tokenString without verifying its signature.
// Only the payload (second) segment is read: the header and signature may be
// missing or garbage. Every failure (no payload, base64, JSON object, claim
// types) wraps ErrMalformedToken.
func Decode(tokenString string) (Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) < 2 {
		return Claims{}, errors.Join(ErrMalformedToken, errors.New("missing payload segment"))
	}

	payload, err := unverified.DecodeSegment(parts[1])
	if err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}

	mc := gojwt.MapClaims{}
	if err := json.Unmarshal(payload, &mc); err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}

	return claimsFromMap(mc)
}

func claimsFromMap(mc gojwt.MapClaims) (Claims, error) {
	var (
		c   Claims
		err error
	)

	if c.ExpiresAt, err = timeClaim(mc.GetExpirationTime); err != nil {
		return Claims{}, err
	}
	if c.NotBefore, err = timeClaim(mc.GetNotBefore); err != nil {
		return Claims{}, err
	}
	if c.IssuedAt, err = timeClaim(mc.GetIssuedAt); err != nil {
		return Claims{}, err
	}
	if c.Subject, err = mc.GetSubject(); err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}
	if c.Issuer, err = mc.GetIssuer(); err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}
	aud, err := mc.GetAudience()
	if err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}
	c.Audience = []string(aud)
	if id, ok := mc["jti"].(string); ok {
		c.ID = id
	}

	for k, v := range mc {
		if _, ok := registered[k]; ok {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[k] = v
	}

	return c, nil
}

func timeClaim(get func() (*gojwt.NumericDate, error)) (*time.Time, error) {
	nd, err := get()
	if err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	if nd == nil {
		return nil, nil
	}
	t := nd.Time
	return &t, nil
}
