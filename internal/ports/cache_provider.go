package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for caching operations
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	TotalOps    int64     `json:"total_ops"`
	HitRatio    float64   `json:"hit_ratio"`
	LastUpdated time.Time `json:"last_updated"`
}

// CacheMetrics exposes hit/miss counters of a cache provider
type CacheMetrics interface {
	GetStats() CacheStats
}

// CacheObserver receives the outcome and latency of every cache operation
type CacheObserver interface {
	ObserveCacheOperation(cache, operation, result string, duration time.Duration)
}

// Cache operation results reported to a CacheObserver
const (
	CacheResultHit   = "hit"
	CacheResultMiss  = "miss"
	CacheResultOK    = "ok"
	CacheResultError = "error"
)
