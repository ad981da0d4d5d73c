package guard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/portalguard/pkg/jwt"
	"github.com/dmitrymomot/portalguard/pkg/logger"
	"github.com/dmitrymomot/portalguard/pkg/tokenstore"
)

// DefaultTokenKey is the slot key the token is stored under.
const DefaultTokenKey = "token"

// Observer is notified of every decision Check makes.
type Observer interface {
	ObserveDecision(to Destination, state SessionState, out Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(to Destination, state SessionState, out Outcome)

func (f ObserverFunc) ObserveDecision(to Destination, state SessionState, out Outcome) {
	f(to, state, out)
}

// Guard reads the token slot, clears invalid sessions and applies a Policy.
type Guard struct {
	policy    Policy
	decode    DecodeFunc
	tokenKey  string
	now       func() time.Time
	log       *slog.Logger
	observers []Observer
	redirect  RedirectFunc
}

// Option configures a Guard.
type Option func(*Guard)

// WithTokenKey sets the slot key. Empty keys are ignored.
func WithTokenKey(key string) Option {
	return func(g *Guard) {
		if key != "" {
			g.tokenKey = key
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

// WithObserver adds an observer. May be given more than once.
func WithObserver(o Observer) Option {
	return func(g *Guard) {
		if o != nil {
			g.observers = append(g.observers, o)
		}
	}
}

// WithRedirect replaces the function the middleware answers redirects with.
func WithRedirect(fn RedirectFunc) Option {
	return func(g *Guard) {
		if fn != nil {
			g.redirect = fn
		}
	}
}

// New creates a Guard. A nil decode falls back to jwt.Decode.
func New(policy Policy, decode DecodeFunc, opts ...Option) *Guard {
	if decode == nil {
		decode = jwt.Decode
	}
	g := &Guard{
		policy:   policy,
		decode:   decode,
		tokenKey: DefaultTokenKey,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		redirect: statusRedirect,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.Component("guard"))
	return g
}

func (g *Guard) Policy() Policy   { return g.policy }
func (g *Guard) TokenKey() string { return g.tokenKey }

// Check decides the navigation from -> to. An invalid token is removed from
// store before deciding. Store failures never fail the navigation: an
// unreadable slot counts as empty and a failed removal is only logged.
func (g *Guard) Check(ctx context.Context, store tokenstore.Store, to, from Destination) Outcome {
	out, _ := g.check(ctx, store, to, from)
	return out
}

// check is Check that also returns the claims of a valid session.
func (g *Guard) check(ctx context.Context, store tokenstore.Store, to, from Destination) (Outcome, *jwt.Claims) {
	token, err := store.Get(ctx, g.tokenKey)
	if err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		g.log.WarnContext(ctx, "token slot unreadable, treating as signed out",
			logger.Path(to.Path),
			logger.Error(err),
		)
		token = ""
	}

	state, claims, err := evaluate(token, g.decode, g.now())
	if state == SessionInvalid {
		g.log.DebugContext(ctx, "clearing invalid session",
			logger.Path(to.Path),
			logger.Error(err),
		)
		if rmErr := store.Remove(ctx, g.tokenKey); rmErr != nil {
			g.log.WarnContext(ctx, "failed to clear token slot",
				logger.Path(to.Path),
				logger.Error(rmErr),
			)
		}
	}

	out := g.policy.Decide(to, state)

	for _, o := range g.observers {
		o.ObserveDecision(to, state, out)
	}

	g.log.DebugContext(ctx, "navigation checked",
		logger.Path(to.Path),
		logger.From(from.Path),
		slog.String("session", state.String()),
		logger.Outcome(out),
		logger.Subject(claims.Subject),
	)

	if state != SessionValid {
		return out, nil
	}
	return out, &claims
}
