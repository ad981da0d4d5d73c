package handler

import (
	"errors"
	"log/slog"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a request already decoded into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// ErrorHandler writes the response for a binding or rendering error.
type ErrorHandler func(ctx Context, err error)

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	bind         func(r *http.Request, v any) error
	errorHandler ErrorHandler
}

// WithBinder replaces the default Bind.
func WithBinder(b func(r *http.Request, v any) error) WrapOption {
	return func(c *wrapConfig) {
		if b != nil {
			c.bind = b
		}
	}
}

func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithLogger logs errors through log before answering them with the default
// error handler.
func WithLogger(log *slog.Logger) WrapOption {
	return func(c *wrapConfig) {
		if log != nil {
			c.errorHandler = LoggingErrorHandler(log)
		}
	}
}

// Wrap turns a typed HandlerFunc into an http.HandlerFunc. The request is
// bound into a fresh R; bind or render failures go to the error handler.
//
//	type sessionRequest struct {
//		Token string `form:"token" json:"token"`
//	}
//
//	r.Post("/session", handler.Wrap(func(ctx handler.Context, req sessionRequest) handler.Response {
//		return handler.Redirect("/dashboard")
//	}))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{
		bind:         Bind,
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		if err := cfg.bind(r, &req); err != nil {
			cfg.errorHandler(ctx, err)
			return
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

// DefaultErrorHandler answers HTTPError values with their status and key and
// anything else with 500.
func DefaultErrorHandler(ctx Context, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(ctx.ResponseWriter(), httpErr.Key, httpErr.Code)
		return
	}
	http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
