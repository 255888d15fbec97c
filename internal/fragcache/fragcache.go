// Package fragcache caches rendered HTML fragments under a key for a bounded
// time, so expensive sections of a page can be reused across requests.
//
// The cache is strictly best-effort: a broken or unreachable backend never
// fails a request, it just means the fragment gets rendered directly.
package fragcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is the backend contract the Gate renders through: get a fragment by
// key, or store one with a time-to-live. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the fragment stored under key, and whether one was
	// found. Expired entries report as missing.
	Get(key string) (string, bool)

	// Set stores a fragment under key for the passed TTL, replacing any
	// previous entry. Errors are surfaced so callers can log them, but a
	// Set failure never invalidates the rendered fragment itself.
	Set(key, fragment string, ttl time.Duration) error
}

// RenderFunc produces a fragment when the cache can't.
type RenderFunc func(ctx context.Context) (string, error)

// Gate wraps fragment renderers in a TTL cache. Concurrent misses for the
// same key are collapsed so the fragment is rendered once, but if two
// processes race the store, last writer wins; fragments are derived purely
// from their key's inputs, so either result is correct.
type Gate struct {
	store  Store
	logger *slog.Logger
	group  singleflight.Group

	// OnLookup, if set, is called once per Fragment call with whether the
	// lookup hit the cache. Used to feed instrumentation.
	OnLookup func(hit bool)
}

// NewGate returns a Gate rendering through the passed Store. logger may be
// nil to discard backend failure reports.
func NewGate(store Store, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{store: store, logger: logger}
}

// Fragment returns the fragment stored under key if one is fresh, rendering
// and storing it otherwise. A render error is returned as-is and nothing is
// stored; a store error is logged and the freshly rendered fragment is
// returned anyway.
func (g *Gate) Fragment(ctx context.Context, key string, ttl time.Duration, render RenderFunc) (string, error) {
	if cached, ok := g.store.Get(key); ok {
		if g.OnLookup != nil {
			g.OnLookup(true)
		}
		return cached, nil
	}
	if g.OnLookup != nil {
		g.OnLookup(false)
	}

	result, err, _ := g.group.Do(key, func() (any, error) {
		// re-check under the group: another caller may have filled the
		// key while we waited
		if cached, ok := g.store.Get(key); ok {
			return cached, nil
		}
		fragment, err := render(ctx)
		if err != nil {
			return "", err
		}
		if err := g.store.Set(key, fragment, ttl); err != nil {
			g.logger.WarnContext(ctx, "fragment cache store failed, serving uncached",
				"key", key, "error", err)
		}
		return fragment, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// MemoryStore is an in-process Store backed by a map with per-entry
// deadlines. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	fragment string
	deadline time.Time
}

// NewMemoryStore returns a MemoryStore ready for use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}}
}

// Get returns the fragment stored under key if it hasn't expired.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(entry.deadline) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false
	}
	return entry.fragment, true
}

// Set stores a fragment under key until ttl from now. It never fails.
func (m *MemoryStore) Set(key, fragment string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		fragment: fragment,
		deadline: time.Now().Add(ttl),
	}
	return nil
}
