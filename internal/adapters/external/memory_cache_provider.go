package external

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

const memoryCacheName = "memory"

// MemoryCacheProvider implements CacheProvider with a TTL map. Expired entries are removed
// lazily on read and in bulk by PurgeExpired.
type MemoryCacheProvider struct {
	data     map[string]memoryCacheItem
	mutex    sync.RWMutex
	hits     atomic.Int64
	misses   atomic.Int64
	observer ports.CacheObserver
	now      func() time.Time
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCacheProvider(observer ports.CacheObserver) *MemoryCacheProvider {
	return &MemoryCacheProvider{
		data:     make(map[string]memoryCacheItem),
		observer: observer,
		now:      time.Now,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}
	start := time.Now()

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if exists && c.now().After(item.expiresAt) {
		c.mutex.Lock()
		if current, ok := c.data[key]; ok && c.now().After(current.expiresAt) {
			delete(c.data, key)
		}
		c.mutex.Unlock()
		exists = false
	}

	if !exists {
		c.misses.Add(1)
		c.observe("get", ports.CacheResultMiss, start)
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.hits.Add(1)
	c.observe("get", ports.CacheResultHit, start)
	return item.data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}
	start := time.Now()

	c.mutex.Lock()
	c.data[key] = memoryCacheItem{
		data:      value,
		expiresAt: c.now().Add(ttl),
	}
	c.mutex.Unlock()

	c.observe("set", ports.CacheResultOK, start)
	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	return exists && !c.now().After(item.expiresAt), nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]memoryCacheItem)
	return nil
}

// PurgeExpired drops every expired entry and returns how many were removed
func (c *MemoryCacheProvider) PurgeExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.data {
		if now.After(item.expiresAt) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not
func (c *MemoryCacheProvider) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	return buildCacheStats(c.hits.Load(), c.misses.Load())
}

func (c *MemoryCacheProvider) observe(operation, result string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveCacheOperation(memoryCacheName, operation, result, time.Since(start))
	}
}

func buildCacheStats(hits, misses int64) ports.CacheStats {
	total := hits + misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}
