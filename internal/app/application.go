package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"climaterisk.app/internal/adapters/api"
	"climaterisk.app/internal/adapters/external"
	"climaterisk.app/internal/adapters/infrastructure"
	"climaterisk.app/internal/config"
	"climaterisk.app/internal/core/activity"
	"climaterisk.app/internal/core/climate"
	"climaterisk.app/internal/ports"
)

const (
	seedTimeout        = 30 * time.Second
	cachePurgeInterval = 10 * time.Minute
)

type Application struct {
	config *config.Config

	// Use Cases
	climateUseCase  *climate.UseCase
	activityUseCase *activity.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps     *DependencyContainer
	ports    *ports.ApplicationPorts
	stopChan chan struct{}
}

// NewApplicationWithConfig creates an application from a loaded configuration
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	slog.Info("Initializing application ports...")
	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps)
}

// NewApplicationWithDependencies creates an application on an already built container
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config:   cfg,
		deps:     deps,
		ports:    deps.ApplicationPorts(),
		stopChan: make(chan struct{}),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	climateUseCase, err := climate.NewUseCase(climate.UseCaseDependencies{
		Provider: a.ports.HistoricalProvider,
		Current:  a.ports.CurrentConditions,
		Cache:    a.ports.ClimateCache,
		Geocoder: a.ports.Geocoder,
		Config:   a.ports.ConfigProvider,
		Logger:   a.ports.Logger,
		Metrics:  a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create climate use case: %w", err)
	}
	a.climateUseCase = climateUseCase

	activityUseCase, err := activity.NewUseCase(activity.UseCaseDependencies{
		Repository:  a.ports.ActivityRepository,
		Climatology: a.climateUseCase,
		Config:      a.ports.ConfigProvider,
		Logger:      a.ports.Logger,
		Metrics:     a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create activity use case: %w", err)
	}
	a.activityUseCase = activityUseCase

	if a.config.Activity.SeedDefaults {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		defer cancel()
		if err := a.activityUseCase.SeedDefaults(ctx); err != nil {
			return fmt.Errorf("seed default activity profiles: %w", err)
		}
	}

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	metrics := a.deps.Metrics()

	healthConfig := infrastructure.SystemHealthCheckerConfig{
		DatabaseChecker: infrastructure.NewDatabaseHealthChecker(a.deps.Database()),
		CacheChecker:    infrastructure.NewCacheHealthChecker(a.config.Cache.Type.String(), a.ports.CacheMetrics),
		ProviderChecker: infrastructure.NewProviderHealthChecker("historicalProvider", a.ports.HistoricalProvider),
		ConfigProvider:  a.ports.ConfigProvider,
	}
	if a.ports.CurrentConditions != nil {
		healthConfig.CurrentChecker = infrastructure.NewProviderHealthChecker("currentProvider", a.ports.CurrentConditions)
	}
	systemHealthChecker := infrastructure.NewSystemHealthChecker(healthConfig)

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		ClimateUseCase:      a.climateUseCase,
		ActivityUseCase:     a.activityUseCase,
		MetricsCollector:    metrics,
		SystemHealthChecker: systemHealthChecker,
		MetricsHandler:      metrics.Handler(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	// a cold window fetch may spend the whole retry budget before answering
	writeTimeout := time.Duration(a.config.Climate.RequestTimeout+a.config.Climate.MaxRetrySeconds)*time.Second + 30*time.Second
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if memoryCache, ok := a.deps.Cache().(*external.MemoryCacheProvider); ok {
		go a.startCachePurger(ctx, memoryCache)
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// startCachePurger drops expired climate windows from the in-process cache
func (a *Application) startCachePurger(ctx context.Context, cache *external.MemoryCacheProvider) {
	ticker := time.NewTicker(cachePurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Cache purger stopped due to context cancellation")
			return
		case <-a.stopChan:
			slog.Info("Cache purger stopped")
			return
		case <-ticker.C:
			if removed := cache.PurgeExpired(); removed > 0 {
				slog.Debug("Purged expired cache entries", "removed", removed, "remaining", cache.Len())
			}
		}
	}
}

// Shutdown stops the HTTP server and releases the database and cache, even when
// the server does not drain before ctx expires
func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	close(a.stopChan)

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return shutdownErr
}

// Run serves until ctx is cancelled and returns once shutdown and cleanup have finished
func (a *Application) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.Start(ctx)
	}()

	select {
	case err := <-serveErr:
		if cleanupErr := a.deps.Cleanup(); cleanupErr != nil {
			slog.Warn("Error releasing resources", "error", cleanupErr)
		}
		return err
	case <-ctx.Done():
		slog.Info("Received shutdown signal...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}

// GetRouter returns the Gin router
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}
