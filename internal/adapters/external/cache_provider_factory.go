package external

import (
	"fmt"

	"climaterisk.app/internal/config"
	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

// CacheProvider is a cache that also reports hit/miss counters
type CacheProvider interface {
	ports.CacheProvider
	ports.CacheMetrics
}

type CacheProviderFactory struct {
	observer ports.CacheObserver
}

func NewCacheProviderFactory(observer ports.CacheObserver) *CacheProviderFactory {
	return &CacheProviderFactory{observer: observer}
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (CacheProvider, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(f.observer), nil
	case config.CacheTypeRedis:
		provider, err := NewRedisCacheProviderAdapter(&cfg.Redis, f.observer)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
