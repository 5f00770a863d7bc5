package ports

import (
	"context"
	"time"
)

// ClimateConfig represents climatology service configuration
type ClimateConfig struct {
	EnableCache bool
	CacheTTL    time.Duration
	WindowYears int
}

// ActivityConfig represents activity profile configuration
type ActivityConfig struct {
	MaxWeight float64
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host    string
	Port    int
	Name    string
	SSLMode string
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type      string
	RedisAddr string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetClimateConfig() ClimateConfig
	GetActivityConfig() ActivityConfig
	GetServerConfig() ServerConfig
	GetDatabaseConfig() DatabaseConfig
	GetCacheConfig() CacheConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for domain metrics collection
type MetricsCollector interface {
	RecordCacheHit(ctx context.Context)
	RecordCacheMiss(ctx context.Context)
	RecordProviderCall(ctx context.Context, provider string, success bool, duration time.Duration)
	RecordRiskAssessment(ctx context.Context, level string)
}
