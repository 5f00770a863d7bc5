package infrastructure

import (
	"time"

	"climaterisk.app/internal/config"
	"climaterisk.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetClimateConfig returns climatology configuration
func (c *ConfigProviderAdapter) GetClimateConfig() ports.ClimateConfig {
	return ports.ClimateConfig{
		EnableCache: c.config.Climate.EnableCache,
		CacheTTL:    time.Duration(c.config.Climate.CacheTTLMinutes) * time.Minute,
		WindowYears: c.config.Climate.WindowYears,
	}
}

// GetActivityConfig returns activity profile configuration
func (c *ConfigProviderAdapter) GetActivityConfig() ports.ActivityConfig {
	return ports.ActivityConfig{
		MaxWeight: c.config.Activity.MaxWeight,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetDatabaseConfig returns database configuration without credentials
func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	return ports.DatabaseConfig{
		Host:    c.config.Database.Host,
		Port:    c.config.Database.Port,
		Name:    c.config.Database.Name,
		SSLMode: c.config.Database.SSLMode,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	cfg := ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
	}
	if c.config.Cache.Type == config.CacheTypeRedis {
		cfg.RedisAddr = c.config.Cache.Redis.Addr
	}
	return cfg
}
