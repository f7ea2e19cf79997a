// Package cache provides the time-boxed in-memory result cache used by the
// stats service. The cache is an explicitly constructed, injectable object
// owned by the orchestrator; the core pipeline never reads or writes it.
package cache

import (
	"sync"
	"time"

	"github.com/codetime-dev/codetime/internal/models"
)

// Cache is the result cache contract consumed by the stats service.
type Cache interface {
	Get(key string) (*models.RepoStats, bool)
	Set(key string, value *models.RepoStats)
	Delete(key string)
	Clear()
	Size() int
}

type entry struct {
	value     *models.RepoStats
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded map with per-entry expiry. Expired entries
// are dropped lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache whose entries live for ttl. A zero
// or negative ttl disables expiry.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *MemoryCache) Get(key string) (*models.RepoStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, restarting its lifetime.
func (c *MemoryCache) Set(key string, value *models.RepoStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[key] = e
}

// Delete removes a single entry.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Size returns the number of stored entries, counting entries that have
// expired but not yet been dropped.
func (c *MemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
