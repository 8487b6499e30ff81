package reconcile

import (
	"context"
	"sync"
	"time"

	"file-integrity/core/fingerprint"

	"golang.org/x/sync/singleflight"
)

// LoadFunc loads a baseline set, for example by downloading and parsing a CSV object.
type LoadFunc func(ctx context.Context) (fingerprint.Set, error)

// cachedBaseline holds a loaded baseline and when it was loaded.
type cachedBaseline struct {
	set   fingerprint.Set
	built time.Time
}

// BaselineCache keeps loaded baselines for a limited time so repeated comparisons
// against the same remote baseline do not download and parse it again.
type BaselineCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]*cachedBaseline
	sf      singleflight.Group
}

// NewBaselineCache creates a cache. A ttl of zero disables caching.
func NewBaselineCache(ttl time.Duration) *BaselineCache {
	return &BaselineCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*cachedBaseline),
	}
}

func (c *BaselineCache) isExpired(e *cachedBaseline) bool {
	if c.ttl <= 0 {
		return true // No caching
	}
	return c.now().Sub(e.built) > c.ttl
}

// GetOrLoad returns the cached baseline for key or loads it with load.
// Concurrent callers for the same key share a single load.
//
// Callers must not modify the returned set.
func (c *BaselineCache) GetOrLoad(ctx context.Context, key string, load LoadFunc) (fingerprint.Set, error) {
	// Fast path: check if entry exists and is fresh
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.isExpired(entry) {
		return entry.set, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !c.isExpired(entry) {
			return entry.set, nil
		}

		set, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = &cachedBaseline{set: set, built: c.now()}
			c.mu.Unlock()
		}

		return set, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(fingerprint.Set), nil
}

// Invalidate removes the cached baseline for key.
func (c *BaselineCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of cached baselines, including expired ones.
func (c *BaselineCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
