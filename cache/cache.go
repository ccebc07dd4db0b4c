package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a TTL-bounded read-through memo for remote lookups. Entries
// live for a fixed TTL after being stored; a read within the TTL returns
// the stored value, a read after it refetches. There is no eviction
// beyond TTL staleness and explicit invalidation.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache whose entries expire ttl after being stored.
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]entry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrFetch returns the live cached value for key, or invokes fetch,
// stores its result and returns it. A failed fetch stores nothing, so the
// next call retries. Concurrent misses on the same key may each invoke
// fetch; fetch is expected to be an idempotent read.
func GetOrFetch[T any](c *Cache, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(key, v)
	return v, nil
}

// Invalidate removes one entry. Removing an absent key is a no-op.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll clears every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]entry{}
}

// Len reports the number of entries currently stored, live or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: v, storedAt: c.now()}
}
