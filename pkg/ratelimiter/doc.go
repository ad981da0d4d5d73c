// Package ratelimiter implements a token bucket limiter with in-memory and
// Redis stores and an HTTP middleware.
//
// The portal uses it to throttle the session endpoints per client IP:
//
//	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg)
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(b, ratelimiter.ByIP, log)).Post("/session", h)
//
// A denied request does not consume tokens. Responses carry the
// X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset headers, and
// Retry-After when denied.
package ratelimiter
