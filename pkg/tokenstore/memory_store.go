package tokenstore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps values in process memory.
//
// With a TTL, expired values read as absent and are swept on writes at most
// once per TTL, so the map holds roughly the values written in the last two
// TTLs. Without one, values stay until removed.
type MemoryStore struct {
	mu        sync.RWMutex
	values    map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryTTL expires stored values after ttl. Zero keeps them until removed.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		if ttl >= 0 {
			m.ttl = ttl
		}
	}
}

// WithMemoryClock replaces time.Now, mostly for tests.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		values: make(map[string]memoryEntry),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastSweep = m.now()
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.values[key]
	if !ok || e.expired(m.now()) {
		return "", ErrNotFound
	}
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e := memoryEntry{value: value}
	if m.ttl > 0 {
		e.expiresAt = now.Add(m.ttl)
		if now.Sub(m.lastSweep) >= m.ttl {
			m.sweep(now)
		}
	}
	m.values[key] = e
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Len returns the number of held keys, expired ones not yet swept included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// sweep drops expired values. Callers hold the write lock.
func (m *MemoryStore) sweep(now time.Time) {
	for k, e := range m.values {
		if e.expired(now) {
			delete(m.values, k)
		}
	}
	m.lastSweep = now
}
