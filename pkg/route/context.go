package route

import "context"

type matchContextKey struct{}

// WithMatch stores the resolved match in ctx.
func WithMatch(ctx context.Context, m Match) context.Context {
	return context.WithValue(ctx, matchContextKey{}, m)
}

// MatchFromContext returns the match stored by WithMatch.
func MatchFromContext(ctx context.Context) (Match, bool) {
	m, ok := ctx.Value(matchContextKey{}).(Match)
	return m, ok
}
