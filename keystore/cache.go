package keystore

import (
	"context"
	"sync"
	"time"
)

// Cache is a read-through decorator over a [Store] with per-entry TTL.
// Misses are cached too, so a burst of tokens carrying an unknown kid costs
// one backend read per window. Backend failures are never cached.
type Cache struct {
	inner Store
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	rec       *KeyRecord
	expiresAt time.Time
}

// NewCache wraps inner with a TTL cache. ttl <= 0 defaults to one minute.
func NewCache(inner Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) GetKeyByID(ctx context.Context, kid string) (*KeyRecord, error) {
	c.mu.RLock()
	entry, ok := c.entries[kid]
	c.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.rec, nil
	}

	rec, err := c.inner.GetKeyByID(ctx, kid)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[kid] = cacheEntry{rec: rec, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return rec, nil
}

// Invalidate drops the cached entry for kid, forcing the next read through
// to the backend.
func (c *Cache) Invalidate(kid string) {
	c.mu.Lock()
	delete(c.entries, kid)
	c.mu.Unlock()
}

// Reset drops every cached entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
