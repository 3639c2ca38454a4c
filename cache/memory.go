package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shroudlabs/go-shroud-data/data"
)

// MemoryDataCacher in-process Data cacher
// Intended for tests and single-node deployments without redis
type MemoryDataCacher struct {
	mu         sync.RWMutex
	entries    map[string]*memoryEntry
	maxEntries int
	defaultTTL time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

type memoryEntry struct {
	value     data.Data
	expiresAt time.Time
}

// NewMemoryDataCacher creates an in-memory Data cacher
// A janitor goroutine reclaims expired entries until Close is called
func NewMemoryDataCacher(maxEntries int, defaultTTL time.Duration) *MemoryDataCacher {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	c := &MemoryDataCacher{
		entries:    make(map[string]*memoryEntry),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		stop:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Set stores a value, overwriting any existing entry
func (c *MemoryDataCacher) Set(ctx context.Context, key string, d data.Data, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOne()
	}

	c.entries[key] = &memoryEntry{
		value:     d,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get retrieves a cached value
func (c *MemoryDataCacher) Get(ctx context.Context, key string) (data.Data, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return data.Data{}, ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return data.Data{}, ErrCacheMiss
	}
	return entry.value, nil
}

// Exists reports whether an entry exists
func (c *MemoryDataCacher) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}
	return !time.Now().After(entry.expiresAt), nil
}

// Expire resets the TTL on an existing entry
func (c *MemoryDataCacher) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	entry.expiresAt = time.Now().Add(ttl)
	return true, nil
}

// DefaultExpiration returns the TTL applied when no explicit one is given
func (c *MemoryDataCacher) DefaultExpiration() time.Duration {
	return c.defaultTTL
}

// Size returns the current entry count (expired entries included until reclaimed)
func (c *MemoryDataCacher) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the janitor and drops all entries (idempotent)
func (c *MemoryDataCacher) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.mu.Lock()
	c.entries = make(map[string]*memoryEntry)
	c.mu.Unlock()
}

// evictOne drops the entry closest to expiry (callers hold the write lock)
func (c *MemoryDataCacher) evictOne() {
	var oldest string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldest == "" || entry.expiresAt.Before(oldestTime) {
			oldest = key
			oldestTime = entry.expiresAt
		}
	}
	if oldest != "" {
		delete(c.entries, oldest)
	}
}

func (c *MemoryDataCacher) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *MemoryDataCacher) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
