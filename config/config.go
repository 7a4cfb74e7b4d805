package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Ranking   RankingConfig
	Matching  MatchingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CatalogConfig selects where the product and profile tables come from
type CatalogConfig struct {
	Source string `mapstructure:"source"` // "embedded", "file" or "sqlite"
	Path   string `mapstructure:"path"`
}

// RankingConfig holds alternative ranking configuration
type RankingConfig struct {
	DefaultLimit        int     `mapstructure:"default_limit"`
	MaxLimit            int     `mapstructure:"max_limit"`
	CategoryPolicy      string  `mapstructure:"category_policy"` // "same_category", "category_first" or "any"
	MinAlternativeScore float64 `mapstructure:"min_alternative_score"`
}

// MatchingConfig holds cart item name resolution configuration
type MatchingConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Type    string        `mapstructure:"type"` // "memory"
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/allergen-scanner/")

	// Environment variable settings
	v.SetEnvPrefix("SCANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// Catalog defaults
	v.SetDefault("catalog.source", "embedded")
	v.SetDefault("catalog.path", "")

	// Ranking defaults
	v.SetDefault("ranking.default_limit", 3)
	v.SetDefault("ranking.max_limit", 20)
	v.SetDefault("ranking.category_policy", "same_category")
	v.SetDefault("ranking.min_alternative_score", 0)

	// Matching defaults
	v.SetDefault("matching.min_confidence", 0.6)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case "embedded":
	case "file", "sqlite":
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required for source %q (set SCANNER_CATALOG_PATH)", config.Catalog.Source)
		}
	default:
		return fmt.Errorf("catalog source must be 'embedded', 'file' or 'sqlite', got: %s", config.Catalog.Source)
	}

	if config.Ranking.MaxLimit <= 0 {
		return fmt.Errorf("ranking max_limit must be positive, got: %d", config.Ranking.MaxLimit)
	}

	if config.Ranking.DefaultLimit <= 0 || config.Ranking.DefaultLimit > config.Ranking.MaxLimit {
		return fmt.Errorf("ranking default_limit must be between 1 and %d, got: %d", config.Ranking.MaxLimit, config.Ranking.DefaultLimit)
	}

	switch config.Ranking.CategoryPolicy {
	case "same_category", "category_first", "any":
	default:
		return fmt.Errorf("ranking category_policy must be 'same_category', 'category_first' or 'any', got: %s", config.Ranking.CategoryPolicy)
	}

	if config.Matching.MinConfidence < 0 || config.Matching.MinConfidence > 1 {
		return fmt.Errorf("matching min_confidence must be within [0,1], got: %v", config.Matching.MinConfidence)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.Log.Level, err)
	}

	if config.Log.Format != "console" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	return nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
