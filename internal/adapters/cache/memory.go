package cache

import (
	"context"
	"sync"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

var _ ports.Cache = (*MemoryCache)(nil)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is the single-process stand-in for Redis. Expired entries are
// dropped lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	nowFn   func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryCache(nowFn func() time.Time) *MemoryCache {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &MemoryCache{nowFn: nowFn, entries: map[string]memoryEntry{}}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !c.nowFn().Before(entry.expiresAt) {
		delete(c.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.nowFn().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}
