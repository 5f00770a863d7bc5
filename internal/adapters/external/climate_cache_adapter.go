package external

import (
	"context"
	"encoding/json"
	"time"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

// ClimateCacheAdapter bridges the generic CacheProvider to the ClimateCache port
type ClimateCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewClimateCacheAdapter creates a climate cache adapter using a generic cache provider
func NewClimateCacheAdapter(cacheProvider ports.CacheProvider) *ClimateCacheAdapter {
	return &ClimateCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get retrieves a historical window from cache
func (c *ClimateCacheAdapter) Get(ctx context.Context, key string) (*ports.ClimateWindowData, error) {
	data, err := c.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var window ports.ClimateWindowData
	if err := json.Unmarshal(data, &window); err != nil {
		return nil, errors.NewExternalAPIError("failed to deserialize climate window", err)
	}

	return &window, nil
}

// Set stores a historical window in cache. Missing readings survive the round trip as JSON null.
func (c *ClimateCacheAdapter) Set(ctx context.Context, key string, window *ports.ClimateWindowData, ttl time.Duration) error {
	if window == nil {
		return errors.NewValidationError("climate window cannot be nil")
	}

	data, err := json.Marshal(window)
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize climate window", err)
	}

	return c.cacheProvider.Set(ctx, key, data, ttl)
}
