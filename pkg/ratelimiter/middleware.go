package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/portalguard/pkg/clientip"
	"github.com/dmitrymomot/portalguard/pkg/logger"
)

const maxKeyLength = 64

// KeyFunc extracts the limiter key from a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByIP keys requests by client IP, preferring the one stored by
// clientip.Middleware.
func ByIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.GetIP(r)
}

// ByPath keys requests by URL path.
func ByPath(r *http.Request) string {
	return r.URL.Path
}

// Composite joins the non-empty keys of fns with ":". Keys longer than 64
// bytes are replaced by their FNV-1a hash in base 36.
func Composite(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		key := strings.Join(parts, ":")
		if len(key) <= maxKeyLength {
			return key
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(key))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// Middleware answers 429 once the bucket for a key is empty. Store errors
// are logged and let the request through.
func Middleware(b *Bucket, key KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := b.Allow(r.Context(), k)
			if err != nil {
				if log != nil {
					log.WarnContext(r.Context(), "rate limiter unavailable",
						logger.Path(r.URL.Path),
						logger.Error(err),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				secs := max(int(math.Ceil(res.RetryAfter(b.now()).Seconds())), 1)
				h.Set("Retry-After", strconv.Itoa(secs))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
