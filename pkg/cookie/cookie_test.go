package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrymomot/portalguard/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

// replay copies the Set-Cookie headers of w into a new request.
func replay(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		secrets []string
		wantErr error
		canSign bool
	}{
		{name: "no secrets", secrets: nil, canSign: false},
		{name: "empty secrets are dropped", secrets: []string{"", ""}, canSign: false},
		{name: "secret too short", secrets: []string{"short"}, wantErr: cookie.ErrSecretTooShort},
		{name: "valid secret", secrets: []string{secret}, canSign: true},
		{name: "rotation", secrets: []string{secret, oldSecret}, canSign: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := cookie.New(tt.secrets)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if m.CanSign() != tt.canSign {
				t.Errorf("CanSign() = %v, want %v", m.CanSign(), tt.canSign)
			}
		})
	}
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"simple", "test", "value"},
		{"jwt shaped", "token", "aGVhZGVy.cGF5bG9hZA.c2ln"},
		{"special chars", "special", "hello=world&foo=bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			m.Set(w, tt.key, tt.value)

			got, err := m.Get(replay(w), tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %v, want %v", got, tt.value)
			}
		})
	}
}

func TestManager_GetMissing(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil)

	_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
	if !errors.Is(err, cookie.ErrCookieNotFound) {
		t.Errorf("Get() error = %v, want %v", err, cookie.ErrCookieNotFound)
	}
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		m, _ := cookie.New([]string{secret})
		w := httptest.NewRecorder()
		if err := m.SetSigned(w, "cid", "client-1"); err != nil {
			t.Fatalf("SetSigned() error = %v", err)
		}
		got, err := m.GetSigned(replay(w), "cid")
		if err != nil {
			t.Fatalf("GetSigned() error = %v", err)
		}
		if got != "client-1" {
			t.Errorf("GetSigned() = %v, want client-1", got)
		}
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		m, _ := cookie.New([]string{secret})
		w := httptest.NewRecorder()
		_ = m.SetSigned(w, "cid", "client-1")

		c := w.Result().Cookies()[0]
		_, sig, _ := strings.Cut(c.Value, ".")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "cid", Value: "Y2xpZW50LTI." + sig})

		if _, err := m.GetSigned(r, "cid"); !errors.Is(err, cookie.ErrInvalidSignature) {
			t.Errorf("GetSigned() error = %v, want %v", err, cookie.ErrInvalidSignature)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		m, _ := cookie.New([]string{secret})
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "cid", Value: "no-separator"})

		if _, err := m.GetSigned(r, "cid"); !errors.Is(err, cookie.ErrInvalidFormat) {
			t.Errorf("GetSigned() error = %v, want %v", err, cookie.ErrInvalidFormat)
		}
	})

	t.Run("without secret", func(t *testing.T) {
		t.Parallel()
		m, _ := cookie.New(nil)
		if err := m.SetSigned(httptest.NewRecorder(), "cid", "x"); !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("SetSigned() error = %v, want %v", err, cookie.ErrNoSecret)
		}
	})

	t.Run("rotation keeps old cookies valid", func(t *testing.T) {
		t.Parallel()
		old, _ := cookie.New([]string{oldSecret})
		w := httptest.NewRecorder()
		_ = old.SetSigned(w, "cid", "client-1")

		rotated, _ := cookie.New([]string{secret, oldSecret})
		got, err := rotated.GetSigned(replay(w), "cid")
		if err != nil {
			t.Fatalf("GetSigned() error = %v", err)
		}
		if got != "client-1" {
			t.Errorf("GetSigned() = %v, want client-1", got)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil)

	w := httptest.NewRecorder()
	m.Delete(w, "token")

	cookieStr := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookieStr, "token=") {
		t.Errorf("Delete() did not set correct cookie name, got: %s", cookieStr)
	}
	if !strings.Contains(cookieStr, "Max-Age=0") {
		t.Errorf("Delete() did not expire the cookie, got: %s", cookieStr)
	}
}

func TestManager_Options(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New(nil,
		cookie.WithDomain(".example.com"),
		cookie.WithPath("/app"),
		cookie.WithSecure(true),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)

	w := httptest.NewRecorder()
	m.Set(w, "test", "value", cookie.WithMaxAge(3600))

	cookieStr := w.Header().Get("Set-Cookie")
	for _, want := range []string{"Domain=example.com", "Path=/app", "Max-Age=3600", "Secure", "SameSite=Strict"} {
		if !strings.Contains(cookieStr, want) {
			t.Errorf("Set() cookie %q does not contain %q", cookieStr, want)
		}
	}
	if strings.Contains(cookieStr, "HttpOnly") {
		t.Errorf("Set() cookie %q should not be HttpOnly", cookieStr)
	}
}
