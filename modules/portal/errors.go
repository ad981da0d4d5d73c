package portal

import "errors"

var (
	ErrUnknownTokenStore = errors.New("portal: unknown token store")
	ErrRedisRequired     = errors.New("portal: redis token store requires a redis client")
	ErrLoadRoutes        = errors.New("portal: failed to load route table")
	ErrDevIssuer         = errors.New("portal: failed to create development token issuer")
)
