package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"

	"climaterisk.app/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 10080
	maxWindowYears     = 40
	maxPortNumber      = 65535
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Climate   ClimateConfig   `split_words:"true"`
	Geocoding GeocodingConfig `split_words:"true"`
	Current   CurrentConfig   `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Activity  ActivityConfig  `split_words:"true"`
	LogLevel  string          `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"climaterisk"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ClimateConfig configures the historical data provider (NASA POWER daily point API)
type ClimateConfig struct {
	BaseURL         string `envconfig:"CLIMATE_API_BASE_URL" default:"https://power.larc.nasa.gov/api/temporal/daily/point"`
	Community       string `envconfig:"CLIMATE_COMMUNITY" default:"SB"`
	WindowYears     int    `envconfig:"CLIMATE_WINDOW_YEARS" default:"30"`
	EnableCache     bool   `envconfig:"CLIMATE_ENABLE_CACHE" default:"true"`
	CacheTTLMinutes int    `envconfig:"CLIMATE_CACHE_TTL_MINUTES" default:"1440"`
	RequestTimeout  int    `envconfig:"CLIMATE_REQUEST_TIMEOUT" default:"60"`
	MaxRetrySeconds int    `envconfig:"CLIMATE_MAX_RETRY_SECONDS" default:"120"`
	EnableLogging   bool   `envconfig:"CLIMATE_ENABLE_LOGGING" default:"true"`
	LogFilePath     string `envconfig:"CLIMATE_LOG_FILE_PATH" default:"logs/climate_provider.log"`
}

// CurrentConfig configures the live weather provider (Open-Meteo forecast API)
type CurrentConfig struct {
	Enabled        bool   `envconfig:"CURRENT_WEATHER_ENABLED" default:"true"`
	BaseURL        string `envconfig:"CURRENT_WEATHER_BASE_URL" default:"https://api.open-meteo.com/v1/forecast"`
	RequestTimeout int    `envconfig:"CURRENT_WEATHER_REQUEST_TIMEOUT" default:"10"`
}

type GeocodingConfig struct {
	Enabled   bool   `envconfig:"GEOCODING_ENABLED" default:"true"`
	BaseURL   string `envconfig:"GEOCODING_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string `envconfig:"GEOCODING_USER_AGENT" default:"climaterisk.app/1.0"`
	Language  string `envconfig:"GEOCODING_LANGUAGE" default:"en"`
}

// LanguageTag parses GEOCODING_LANGUAGE as a BCP 47 tag
func (g *GeocodingConfig) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(g.Language)
	if err != nil {
		return language.Und, errors.NewConfigurationError("GEOCODING_LANGUAGE must be a BCP 47 language tag", err)
	}
	return tag, nil
}

type ActivityConfig struct {
	SeedDefaults bool    `envconfig:"ACTIVITY_SEED_DEFAULTS" default:"true"`
	MaxWeight    float64 `envconfig:"ACTIVITY_MAX_WEIGHT" default:"10"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Climate.Validate(); err != nil {
		return err
	}
	if err := c.Geocoding.Validate(); err != nil {
		return err
	}
	if err := c.Current.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Activity.Validate(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LOG_LEVEL into a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", err)
	}
	return level, nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *ClimateConfig) Validate() error {
	if err := validateHTTPURL("CLIMATE_API_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if w.Community == "" {
		return errors.NewConfigurationError("CLIMATE_COMMUNITY cannot be empty", nil)
	}
	if w.WindowYears < 1 || w.WindowYears > maxWindowYears {
		return errors.NewConfigurationError("CLIMATE_WINDOW_YEARS must be between 1 and 40", nil)
	}
	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("CLIMATE_CACHE_TTL_MINUTES must be between 1 and 10080 minutes", nil)
	}
	if w.RequestTimeout < 1 {
		return errors.NewConfigurationError("CLIMATE_REQUEST_TIMEOUT must be at least 1 second", nil)
	}
	if w.MaxRetrySeconds < 0 {
		return errors.NewConfigurationError("CLIMATE_MAX_RETRY_SECONDS cannot be negative", nil)
	}
	return nil
}

func (w *CurrentConfig) Validate() error {
	if !w.Enabled {
		return nil
	}
	if err := validateHTTPURL("CURRENT_WEATHER_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if w.RequestTimeout < 1 {
		return errors.NewConfigurationError("CURRENT_WEATHER_REQUEST_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (g *GeocodingConfig) Validate() error {
	if !g.Enabled {
		return nil
	}
	if err := validateHTTPURL("GEOCODING_BASE_URL", g.BaseURL); err != nil {
		return err
	}
	// Nominatim's usage policy rejects requests without an identifying User-Agent
	if g.UserAgent == "" {
		return errors.NewConfigurationError("GEOCODING_USER_AGENT cannot be empty when geocoding is enabled", nil)
	}
	if _, err := g.LanguageTag(); err != nil {
		return err
	}
	return nil
}

func (a *ActivityConfig) Validate() error {
	if a.MaxWeight <= 0 {
		return errors.NewConfigurationError("ACTIVITY_MAX_WEIGHT must be positive", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func validateHTTPURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
