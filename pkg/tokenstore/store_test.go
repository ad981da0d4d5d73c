package tokenstore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portalguard/pkg/cookie"
	"github.com/dmitrymomot/portalguard/pkg/tokenstore"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// exercise runs the behaviour every Store must share.
func exercise(t *testing.T, s tokenstore.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "token")
	require.ErrorIs(t, err, tokenstore.ErrNotFound)

	require.NoError(t, s.Set(ctx, "token", "abc"))
	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Set(ctx, "token", "def"))
	v, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	require.NoError(t, s.Remove(ctx, "token"))
	_, err = s.Get(ctx, "token")
	require.ErrorIs(t, err, tokenstore.ErrNotFound)

	require.NoError(t, s.Remove(ctx, "token"), "remove must be idempotent")

	_, err = s.Get(ctx, "")
	require.ErrorIs(t, err, tokenstore.ErrEmptyKey)
	require.ErrorIs(t, s.Set(ctx, "", "x"), tokenstore.ErrEmptyKey)
	require.ErrorIs(t, s.Remove(ctx, ""), tokenstore.ErrEmptyKey)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exercise(t, tokenstore.NewMemoryStore())
}

func TestMemoryStoreTTL(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := tokenstore.NewMemoryStore(
		tokenstore.WithMemoryTTL(time.Minute),
		tokenstore.WithMemoryClock(func() time.Time { return current }),
	)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a:token", "abc"))
	current = current.Add(30 * time.Second)
	v, err := s.Get(ctx, "a:token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	current = current.Add(30 * time.Second)
	_, err = s.Get(ctx, "a:token")
	assert.ErrorIs(t, err, tokenstore.ErrNotFound)
	assert.Equal(t, 1, s.Len(), "expired values linger until the next sweep")

	require.NoError(t, s.Set(ctx, "b:token", "def"))
	assert.Equal(t, 1, s.Len(), "a write after a full ttl sweeps expired values")

	v, err = s.Get(ctx, "b:token")
	require.NoError(t, err)
	assert.Equal(t, "def", v)
}

func TestMemoryStoreWithoutTTL(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := tokenstore.NewMemoryStore(tokenstore.WithMemoryClock(func() time.Time { return current }))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", "abc"))
	current = current.Add(24 * 365 * time.Hour)
	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	t.Run("behaviour", func(t *testing.T) {
		t.Parallel()
		_, client := newTestRedis(t)
		exercise(t, tokenstore.NewRedisStore(client))
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		mr, client := newTestRedis(t)
		s := tokenstore.NewRedisStore(client, tokenstore.WithPrefix("test:"))
		require.NoError(t, s.Set(context.Background(), "token", "abc"))

		got, err := mr.Get("test:token")
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})

	t.Run("ttl", func(t *testing.T) {
		t.Parallel()
		mr, client := newTestRedis(t)
		s := tokenstore.NewRedisStore(client, tokenstore.WithTTL(time.Minute))
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "token", "abc"))

		mr.FastForward(2 * time.Minute)

		_, err := s.Get(ctx, "token")
		assert.ErrorIs(t, err, tokenstore.ErrNotFound)
	})

	t.Run("unavailable", func(t *testing.T) {
		t.Parallel()
		mr, client := newTestRedis(t)
		s := tokenstore.NewRedisStore(client)
		mr.Close()

		_, err := s.Get(context.Background(), "token")
		require.Error(t, err)
		assert.ErrorIs(t, err, tokenstore.ErrUnavailable)
		assert.NotErrorIs(t, err, tokenstore.ErrNotFound)
	})
}

func TestScoped(t *testing.T) {
	t.Parallel()

	shared := tokenstore.NewMemoryStore()
	exercise(t, tokenstore.Scoped(shared, "client-a"))

	ctx := context.Background()
	a := tokenstore.Scoped(shared, "client-a")
	b := tokenstore.Scoped(shared, "client-b")

	require.NoError(t, a.Set(ctx, "token", "for-a"))
	_, err := b.Get(ctx, "token")
	assert.ErrorIs(t, err, tokenstore.ErrNotFound, "scopes must not leak")

	v, err := shared.Get(ctx, "client-a:token")
	require.NoError(t, err)
	assert.Equal(t, "for-a", v)
}

func TestCookieStore(t *testing.T) {
	t.Parallel()
	const secret = "this-is-a-very-long-secret-key-32-chars-long"

	t.Run("behaviour within one request", func(t *testing.T) {
		t.Parallel()
		mgr, err := cookie.New(nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		exercise(t, tokenstore.NewCookieStore(mgr, w, r))
	})

	t.Run("reads the request cookie", func(t *testing.T) {
		t.Parallel()
		mgr, _ := cookie.New(nil)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})

		s := tokenstore.NewCookieStore(mgr, httptest.NewRecorder(), r)
		v, err := s.Get(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})

	t.Run("remove expires the cookie and hides it", func(t *testing.T) {
		t.Parallel()
		mgr, _ := cookie.New(nil)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
		w := httptest.NewRecorder()

		s := tokenstore.NewCookieStore(mgr, w, r)
		require.NoError(t, s.Remove(context.Background(), "token"))

		_, err := s.Get(context.Background(), "token")
		assert.ErrorIs(t, err, tokenstore.ErrNotFound)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Less(t, cookies[0].MaxAge, 0)
	})

	t.Run("signed round trip across requests", func(t *testing.T) {
		t.Parallel()
		mgr, _ := cookie.New([]string{secret})
		w := httptest.NewRecorder()
		s := tokenstore.NewCookieStore(mgr, w, httptest.NewRequest(http.MethodGet, "/", nil),
			tokenstore.WithSignedCookies(true),
			tokenstore.WithCookieMaxAge(time.Hour),
		)
		require.NoError(t, s.Set(context.Background(), "token", "abc"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.NotEqual(t, "abc", cookies[0].Value)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])
		next := tokenstore.NewCookieStore(mgr, httptest.NewRecorder(), r, tokenstore.WithSignedCookies(true))
		v, err := next.Get(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})

	t.Run("forged signed cookie is an empty slot", func(t *testing.T) {
		t.Parallel()
		mgr, _ := cookie.New([]string{secret})
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: "YWJj.forged"})

		s := tokenstore.NewCookieStore(mgr, httptest.NewRecorder(), r, tokenstore.WithSignedCookies(true))
		_, err := s.Get(context.Background(), "token")
		assert.ErrorIs(t, err, tokenstore.ErrNotFound)
	})
}
