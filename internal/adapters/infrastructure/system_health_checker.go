package infrastructure

import (
	"context"
	"sync"

	"climaterisk.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker ports.HealthChecker
	CacheChecker    ports.HealthChecker
	ProviderChecker ports.HealthChecker
	CurrentChecker  ports.HealthChecker // only set when live weather is enabled
	ConfigProvider  ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker. Nil checkers are skipped.
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.DatabaseChecker != nil {
		checkers["database"] = config.DatabaseChecker
	}
	if config.CacheChecker != nil {
		checkers["cache"] = config.CacheChecker
	}
	if config.ProviderChecker != nil {
		checkers["historicalProvider"] = config.ProviderChecker
	}
	if config.CurrentChecker != nil {
		checkers["currentProvider"] = config.CurrentChecker
	}

	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll runs every component check concurrently
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range s.checkers {
		wg.Add(1)
		go func(name string, checker ports.HealthChecker) {
			defer wg.Done()
			status := checker.Check(ctx)
			mu.Lock()
			results[name] = status
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	if s.configProvider != nil {
		climateConfig := s.configProvider.GetClimateConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    ports.StatusHealthy,
			Details: map[string]interface{}{
				"windowYears": climateConfig.WindowYears,
				"cacheType":   s.configProvider.GetCacheConfig().Type,
				"cacheWindow": climateConfig.EnableCache,
				"serverPort":  s.configProvider.GetServerConfig().Port,
				"database":    s.configProvider.GetDatabaseConfig().Name,
			},
		}
	}

	return results
}
