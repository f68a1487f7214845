package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds storefront catalog API configuration
type CatalogConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds confidence-band thresholds for the assistant
type MatchingConfig struct {
	AutoAcceptThreshold int  `mapstructure:"auto_accept_threshold"`
	ConfirmThreshold    int  `mapstructure:"confirm_threshold"`
	MaxSuggestions      int  `mapstructure:"max_suggestions"`
	EnableDebugLogging  bool `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerClient int `mapstructure:"per_client"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tiendafon/")

	// Environment variable settings
	v.SetEnvPrefix("TIENDAFON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.base_url", "http://localhost:3000")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Matching defaults: the confidence bands the chat layer applies
	v.SetDefault("matching.auto_accept_threshold", 85)
	v.SetDefault("matching.confirm_threshold", 60)
	v.SetDefault("matching.max_suggestions", 3)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_client", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set TIENDAFON_CATALOG_BASE_URL)")
	}

	if config.Matching.AutoAcceptThreshold < 1 || config.Matching.AutoAcceptThreshold > 100 {
		return fmt.Errorf("auto accept threshold must be within 1-100, got: %d", config.Matching.AutoAcceptThreshold)
	}

	if config.Matching.ConfirmThreshold >= config.Matching.AutoAcceptThreshold {
		return fmt.Errorf("confirm threshold (%d) must be below auto accept threshold (%d)",
			config.Matching.ConfirmThreshold, config.Matching.AutoAcceptThreshold)
	}

	return nil
}
