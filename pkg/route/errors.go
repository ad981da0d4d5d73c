package route

import "errors"

var (
	// ErrInvalidRoute is returned by New when a record cannot be compiled.
	ErrInvalidRoute = errors.New("route: invalid route")

	// ErrDuplicateName is returned by New when two records share a name.
	ErrDuplicateName = errors.New("route: duplicate route name")

	// ErrNotFound is returned by Resolve when no record matches the path.
	ErrNotFound = errors.New("route: no route matches path")

	// ErrRedirectLoop is returned by Resolve when redirects cycle or chain too deep.
	ErrRedirectLoop = errors.New("route: redirect loop")

	// ErrParseRoutes is returned when a route file cannot be decoded.
	ErrParseRoutes = errors.New("route: failed to parse routes")
)
