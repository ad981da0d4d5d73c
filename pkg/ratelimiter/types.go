package ratelimiter

import "time"

// Result is the outcome of consuming tokens from a bucket.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the consumed tokens were available.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is the wait until the next refill at now, zero when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Config describes a token bucket: Capacity tokens at most, RefillRate
// tokens added every RefillInterval.
type Config struct {
	Capacity       int           `env:"SESSION_RATE_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"SESSION_RATE_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"SESSION_RATE_INTERVAL" envDefault:"6s"`
}

// refill returns the token count after the intervals elapsed since last,
// and whether any interval elapsed.
func (c Config) refill(tokens int, last, now time.Time) (int, bool) {
	elapsed := now.Sub(last)
	if elapsed < c.RefillInterval {
		return tokens, false
	}
	// Cap to avoid overflow after long idle periods.
	intervals := min(int64(elapsed/c.RefillInterval), int64(c.Capacity/c.RefillRate+1))
	return min(tokens+int(intervals)*c.RefillRate, c.Capacity), true
}
