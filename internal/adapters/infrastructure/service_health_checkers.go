package infrastructure

import (
	"context"

	"climaterisk.app/internal/ports"
)

// Pinger is implemented by cache backends that can be pinged
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker reports the cache backend. Backends that implement Pinger
// are pinged; in-process caches are always healthy.
type CacheHealthChecker struct {
	cacheType string
	cache     ports.CacheMetrics
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cacheType string, cache ports.CacheMetrics) *CacheHealthChecker {
	return &CacheHealthChecker{cacheType: cacheType, cache: cache}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    ports.StatusHealthy,
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	if c.cache == nil {
		status.Status = ports.StatusUnhealthy
		status.Error = "cache is not configured"
		return status
	}

	if pinger, ok := c.cache.(Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			// a cache outage only costs latency, requests still reach the provider
			status.Status = ports.StatusDegraded
			status.Error = err.Error()
			return status
		}
	}

	stats := c.cache.GetStats()
	status.Details["hits"] = stats.Hits
	status.Details["misses"] = stats.Misses
	status.Details["hit_ratio"] = stats.HitRatio
	return status
}

// NamedProvider is any upstream data source that can identify itself
type NamedProvider interface {
	GetProviderName() string
}

// ProviderHealthChecker reports a configured upstream provider
type ProviderHealthChecker struct {
	component string
	provider  NamedProvider
}

// NewProviderHealthChecker creates a provider health checker reported under component
func NewProviderHealthChecker(component string, provider NamedProvider) *ProviderHealthChecker {
	return &ProviderHealthChecker{component: component, provider: provider}
}

// Check reports configuration only; it does not call the upstream API
func (h *ProviderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: h.component,
		Status:    ports.StatusHealthy,
		Details: map[string]interface{}{
			"configured": true,
		},
	}

	if h.provider == nil {
		status.Status = ports.StatusUnhealthy
		status.Error = h.component + " is not available"
		status.Details["configured"] = false
		return status
	}

	status.Details["provider"] = h.provider.GetProviderName()
	return status
}
