package tokenstore

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/portalguard/pkg/cookie"
)

// CookieStore keeps each key in a cookie of the same name on the client.
// It is bound to one request/response pair; create one per request.
//
// Writes and removals are visible to later reads through the same store even
// though the request still carries the old cookie.
type CookieStore struct {
	mgr    *cookie.Manager
	w      http.ResponseWriter
	r      *http.Request
	signed bool
	maxAge time.Duration

	// pending holds values written during this request; nil means removed.
	pending map[string]*string
}

// CookieOption configures a CookieStore.
type CookieOption func(*CookieStore)

// WithSignedCookies signs values with the manager secrets and rejects
// cookies whose signature does not verify.
func WithSignedCookies(signed bool) CookieOption {
	return func(s *CookieStore) { s.signed = signed }
}

// WithCookieMaxAge sets the lifetime of written cookies. Zero writes session cookies.
func WithCookieMaxAge(d time.Duration) CookieOption {
	return func(s *CookieStore) { s.maxAge = d }
}

// NewCookieStore binds a store to w and r.
func NewCookieStore(mgr *cookie.Manager, w http.ResponseWriter, r *http.Request, opts ...CookieOption) *CookieStore {
	s := &CookieStore{
		mgr:     mgr,
		w:       w,
		r:       r,
		pending: make(map[string]*string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CookieStore) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", ErrNotFound
		}
		return *v, nil
	}

	var (
		v   string
		err error
	)
	if s.signed {
		v, err = s.mgr.GetSigned(s.r, key)
	} else {
		v, err = s.mgr.Get(s.r, key)
	}
	switch {
	case errors.Is(err, cookie.ErrCookieNotFound):
		return "", ErrNotFound
	case errors.Is(err, cookie.ErrInvalidSignature), errors.Is(err, cookie.ErrInvalidFormat):
		// A forged slot counts as an empty one.
		return "", errors.Join(ErrNotFound, err)
	case err != nil:
		return "", errors.Join(ErrUnavailable, err)
	}
	return v, nil
}

func (s *CookieStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	var opts []cookie.Option
	if s.maxAge > 0 {
		opts = append(opts, cookie.WithMaxAge(int(s.maxAge.Seconds())))
	}

	if s.signed {
		if err := s.mgr.SetSigned(s.w, key, value, opts...); err != nil {
			return errors.Join(ErrUnavailable, err)
		}
	} else {
		s.mgr.Set(s.w, key, value, opts...)
	}

	s.pending[key] = &value
	return nil
}

func (s *CookieStore) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mgr.Delete(s.w, key)
	s.pending[key] = nil
	return nil
}
