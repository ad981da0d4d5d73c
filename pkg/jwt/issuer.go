package jwt

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer mints HS256 tokens for development logins and tooling.
// Production tokens come from the auth backend; nothing here verifies them.
type Issuer struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerName sets the iss claim.
func WithIssuerName(name string) IssuerOption {
	return func(i *Issuer) { i.issuer = name }
}

// WithTTL sets the lifetime of issued tokens. Non-positive values are ignored.
func WithTTL(ttl time.Duration) IssuerOption {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

// WithNow overrides the clock, mostly for tests.
func WithNow(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates an Issuer signing with the given key.
func NewIssuer(signingKey []byte, opts ...IssuerOption) (*Issuer, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	i := &Issuer{
		signingKey: signingKey,
		issuer:     "portalguard",
		ttl:        time.Hour,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue returns a signed token for subject that expires after the configured TTL.
func (i *Issuer) Issue(subject string) (string, error) {
	return i.IssueUntil(subject, i.now().Add(i.ttl))
}

// IssueUntil returns a signed token for subject with an explicit expiration.
// A past expiration is allowed so callers can produce already-expired tokens.
func (i *Issuer) IssueUntil(subject string, expiresAt time.Time) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := i.now()
	claims := gojwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    i.issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(expiresAt),
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
