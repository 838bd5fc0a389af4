// Package cache is a process-local TTL cache for search results. Expired
// entries are evicted lazily on read; there is no background sweeper, so an
// untouched entry can outlive its TTL in memory but is never served.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/asifrahman/travelscout/internal/domain"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache maps string keys to arbitrary values with a fixed TTL.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
		m:   make(map[string]entry),
		now: time.Now,
	}
}

// Key builds the cache key for a category and a normalized query.
func Key(category string, q domain.TripQuery) string {
	return fmt.Sprintf("%s|%s", category, q.CacheKey())
}

// Get returns the cached value for key. An expired entry is deleted on the
// spot and reported as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a Set may have raced us.
		if cur, ok := c.m[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with a fresh TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Clear empties the cache and reports how many entries were removed,
// expired ones included.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.m)
	c.m = make(map[string]entry)
	return n
}

// Size reports the number of stored entries, expired ones included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
