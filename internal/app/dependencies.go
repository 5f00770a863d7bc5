package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"climaterisk.app/internal/adapters/database"
	"climaterisk.app/internal/adapters/external"
	"climaterisk.app/internal/adapters/infrastructure"
	"climaterisk.app/internal/config"
	"climaterisk.app/internal/ports"
)

type DependencyContainer struct {
	config  *config.Config
	db      *gorm.DB
	metrics *infrastructure.MetricsCollectorAdapter
	cache   external.CacheProvider
	ports   *ports.ApplicationPorts
}

// NewDependencyContainer connects to PostgreSQL and builds every adapter
func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return NewDependencyContainerWithDatabase(cfg, db)
}

// NewDependencyContainerWithDatabase builds every adapter on top of an open database.
// Migrations are applied to db.
func NewDependencyContainerWithDatabase(cfg *config.Config, db *gorm.DB) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: cfg,
		db:     db,
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	slog.Info("Initializing database connection...", "host", cfg.Host, "name", cfg.Name)

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	slog.Info("Database connection established successfully")
	return db, nil
}

func runMigrations(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	if err := db.AutoMigrate(&database.ActivityProfileModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	logger := infrastructure.NewSlogLoggerAdapter(slog.Default())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics = infrastructure.NewMetricsCollectorAdapter(registry)

	cacheProvider, err := external.NewCacheProviderFactory(c.metrics).CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = cacheProvider
	c.metrics.SetCacheMetrics(cacheProvider)
	slog.Info("Cache provider initialized", "type", c.config.Cache.Type.String())

	historicalProvider := c.newHistoricalProvider(logger)

	var geocoder ports.Geocoder
	if c.config.Geocoding.Enabled {
		tag, err := c.config.Geocoding.LanguageTag()
		if err != nil {
			return err
		}
		geocoder = external.NewNominatimGeocoderAdapter(external.NominatimGeocoderParams{
			BaseURL:   c.config.Geocoding.BaseURL,
			UserAgent: c.config.Geocoding.UserAgent,
			Language:  tag,
			Logger:    logger,
		})
		slog.Info("Reverse geocoding enabled", "base_url", c.config.Geocoding.BaseURL, "language", tag.String())
	}

	var current ports.CurrentConditionsProvider
	if c.config.Current.Enabled {
		openMeteo, err := external.NewOpenMeteoProviderAdapter(external.OpenMeteoProviderParams{
			BaseURL:        c.config.Current.BaseURL,
			RequestTimeout: time.Duration(c.config.Current.RequestTimeout) * time.Second,
		})
		if err != nil {
			return fmt.Errorf("create current conditions provider: %w", err)
		}
		current = openMeteo
		slog.Info("Current conditions enabled", "base_url", c.config.Current.BaseURL)
	}

	c.ports = &ports.ApplicationPorts{
		HistoricalProvider: historicalProvider,
		CurrentConditions:  current,
		ClimateCache:       external.NewClimateCacheAdapter(cacheProvider),
		Geocoder:           geocoder,

		ActivityRepository: database.NewActivityProfileRepositoryAdapter(c.db),

		CacheProvider: cacheProvider,
		CacheMetrics:  cacheProvider,

		ConfigProvider: infrastructure.NewConfigProviderAdapter(c.config),
		Logger:         logger,
		Metrics:        c.metrics,
		Database:       c.db,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// newHistoricalProvider builds the NASA POWER adapter, wrapped in a logging decorator
// when provider logging is enabled. Request logs go to their own file when one is configured.
func (c *DependencyContainer) newHistoricalProvider(logger ports.Logger) ports.HistoricalDataProvider {
	climateConfig := c.config.Climate

	var provider ports.HistoricalDataProvider = external.NewNASAPowerProviderAdapter(external.NASAPowerProviderParams{
		BaseURL:        climateConfig.BaseURL,
		Community:      climateConfig.Community,
		RequestTimeout: time.Duration(climateConfig.RequestTimeout) * time.Second,
		MaxRetryTime:   time.Duration(climateConfig.MaxRetrySeconds) * time.Second,
		Logger:         logger,
	})

	if !climateConfig.EnableLogging {
		return provider
	}

	var providerLogger ports.Logger = logger
	if climateConfig.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(climateConfig.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			providerLogger = fileLogger
			slog.Info("Provider file logging enabled", "path", fileLogger.Path())
		}
	}

	slog.Info("Historical provider logging enabled")
	return external.NewHistoricalProviderLoggingDecorator(provider, providerLogger)
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Metrics returns the Prometheus-backed metrics collector
func (c *DependencyContainer) Metrics() *infrastructure.MetricsCollectorAdapter {
	return c.metrics
}

// Cache returns the cache provider behind the climate window cache
func (c *DependencyContainer) Cache() external.CacheProvider {
	return c.cache
}

// Cleanup closes the cache connection and the database
func (c *DependencyContainer) Cleanup() error {
	if closer, ok := c.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("Error closing cache", "error", err)
		}
	}
	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			return db.Close()
		}
	}
	return nil
}
