package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. ConsumeTokens refills the bucket for now, takes
// tokens and returns what is left; a negative remainder means denied.
// Consuming zero tokens only refills.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config, now time.Time) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
