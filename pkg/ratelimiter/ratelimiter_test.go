package ratelimiter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portalguard/pkg/ratelimiter"
)

var cfg = ratelimiter.Config{
	Capacity:       3,
	RefillRate:     1,
	RefillInterval: time.Second,
}

// clock is a manually advanced time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock { return &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func stores(t *testing.T) map[string]ratelimiter.Store {
	t.Helper()

	mem := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(mem.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]ratelimiter.Store{
		"memory": mem,
		"redis":  ratelimiter.NewRedisStore(client),
	}
}

func TestBucket(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			clk := newClock()
			b, err := ratelimiter.NewBucket(store, cfg, ratelimiter.WithClock(clk.Now))
			require.NoError(t, err)

			for i := range cfg.Capacity {
				res, err := b.Allow(ctx, "k")
				require.NoError(t, err)
				assert.True(t, res.Allowed())
				assert.Equal(t, cfg.Capacity-i-1, res.Remaining)
				assert.Equal(t, cfg.Capacity, res.Limit)
			}

			res, err := b.Allow(ctx, "k")
			require.NoError(t, err)
			assert.False(t, res.Allowed())
			assert.Equal(t, time.Second, res.RetryAfter(clk.Now()))

			other, err := b.Allow(ctx, "other")
			require.NoError(t, err)
			assert.True(t, other.Allowed(), "keys are independent")

			clk.Advance(time.Second)
			res, err = b.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed(), "one token refilled")
			assert.Equal(t, 0, res.Remaining)

			clk.Advance(time.Hour)
			res, err = b.Status(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, cfg.Capacity, res.Remaining, "refill stops at capacity")

			require.NoError(t, b.Reset(ctx, "k"))
			res, err = b.AllowN(ctx, "k", 3)
			require.NoError(t, err)
			assert.Equal(t, 0, res.Remaining)
		})
	}
}

func TestDeniedRequestsDoNotConsume(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			clk := newClock()
			b, err := ratelimiter.NewBucket(store, cfg, ratelimiter.WithClock(clk.Now))
			require.NoError(t, err)

			_, err = b.AllowN(ctx, "k", 2)
			require.NoError(t, err)

			res, err := b.AllowN(ctx, "k", 2)
			require.NoError(t, err)
			assert.False(t, res.Allowed())

			res, err = b.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
		})
	}
}

func TestBucketValidation(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	for _, c := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.NewBucket(store, c)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}

	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	_, err = b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestRedisStoreUnavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg)
	require.NoError(t, err)
	_, err = b.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()
	clk := newClock()
	b, err := ratelimiter.NewBucket(store, cfg, ratelimiter.WithClock(clk.Now))
	require.NoError(t, err)

	h := ratelimiter.Middleware(b, ratelimiter.ByIP, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(ip string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/session", nil)
		r.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	for i := range cfg.Capacity {
		rec := send("192.0.2.1")
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(cfg.Capacity-i-1), rec.Header().Get("X-RateLimit-Remaining"))
	}

	rec := send("192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, send("192.0.2.2").Code)
}

func TestMiddlewareFailsOpen(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg)
	require.NoError(t, err)

	h := ratelimiter.Middleware(b, ratelimiter.ByIP, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/session", nil)
	r.RemoteAddr = "192.0.2.9:1"

	assert.Equal(t, "192.0.2.9:/session", ratelimiter.Composite(ratelimiter.ByIP, ratelimiter.ByPath)(r))
	assert.Equal(t, "/session", ratelimiter.Composite(func(*http.Request) string { return "" }, ratelimiter.ByPath)(r))

	long := ratelimiter.Composite(func(*http.Request) string { return strings.Repeat("x", 100) })(r)
	assert.LessOrEqual(t, len(long), 13)
	assert.NotEmpty(t, long)
}
