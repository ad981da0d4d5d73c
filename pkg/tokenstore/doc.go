// Package tokenstore provides the key-value slot that holds a client's session
// token.
//
// Store has three operations: Get, Set and Remove. Get returns ErrNotFound
// for an empty slot; Remove is idempotent. Implementations:
//
//   - CookieStore keeps the value in the client's cookie jar, optionally
//     signed. It is bound to a single request and sees its own writes.
//   - MemoryStore keeps values in a mutex-guarded map.
//   - RedisStore keeps values in Redis under a prefix with an optional TTL.
//
// Server-side stores are shared by all clients; wrap them with Scoped to give
// each client its own namespace:
//
//	slot := tokenstore.Scoped(redisStore, clientID)
//	token, err := slot.Get(ctx, "token")
//	if errors.Is(err, tokenstore.ErrNotFound) {
//	    // no session
//	}
//
// Backend failures are wrapped with ErrUnavailable.
package tokenstore
