package tokenstore

import "context"

// Store is a single-slot-per-key string store.
type Store interface {
	// Get returns the value under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

type scoped struct {
	next  Store
	scope string
}

// Scoped namespaces every key of s under scope, so a shared backend can hold
// one slot per client.
func Scoped(s Store, scope string) Store {
	return &scoped{next: s, scope: scope}
}

func (s *scoped) key(k string) string {
	return s.scope + ":" + k
}

func (s *scoped) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	return s.next.Get(ctx, s.key(key))
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.next.Set(ctx, s.key(key), value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.next.Remove(ctx, s.key(key))
}
