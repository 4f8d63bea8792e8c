// Package config provides configuration management for the ingestion pipeline.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/tourcrawl/internal/logger"
)

// Default configuration values.
const (
	DefaultDatabasePath     = "tourism.db"
	DefaultGeocodingTimeout = 10 * time.Second
	DefaultWorkers          = 4
	DefaultStatsDir         = "."
	DefaultCrawlerVersion   = "1.0.0"
)

// Config represents the full application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logger    logger.Config   `mapstructure:"logger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Stats     StatsConfig     `mapstructure:"stats"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// DatabaseConfig holds the storage backend settings.
type DatabaseConfig struct {
	// Path is the SQLite database file location.
	Path string `mapstructure:"path"`
}

// GeocodingConfig holds the geocoding provider settings.
type GeocodingConfig struct {
	// Enabled toggles the geocoding stage.
	Enabled bool `mapstructure:"enabled"`
	// GoogleAPIKey is the primary provider credential. When empty the
	// resolver goes straight to the fallback provider.
	GoogleAPIKey string `mapstructure:"google_api_key"`
	// Timeout bounds each provider call.
	Timeout time.Duration `mapstructure:"timeout"`
	// GoogleURL and NominatimURL override the provider endpoints (tests).
	GoogleURL    string `mapstructure:"google_url"`
	NominatimURL string `mapstructure:"nominatim_url"`
}

// PipelineConfig holds pipeline stage toggles and concurrency settings.
type PipelineConfig struct {
	// ValidationEnabled toggles the validation stage.
	ValidationEnabled bool `mapstructure:"validation_enabled"`
	// Workers is the number of records processed concurrently.
	Workers int `mapstructure:"workers"`
}

// StatsConfig holds the run statistics report settings.
type StatsConfig struct {
	// ReportDir is where the run report JSON file is written.
	ReportDir string `mapstructure:"report_dir"`
}

// Load unmarshals the configuration from viper.
// Viper must already be initialized (see cmd.Execute).
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path must not be empty")
	}
	if c.Pipeline.Workers <= 0 {
		return errors.New("pipeline workers must be positive")
	}
	if c.Geocoding.Timeout <= 0 {
		return errors.New("geocoding timeout must be positive")
	}
	return nil
}

// SetDefaults registers default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "tourcrawl",
		"version":     DefaultCrawlerVersion,
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	viper.SetDefault("database", map[string]any{
		"path": DefaultDatabasePath,
	})

	viper.SetDefault("geocoding", map[string]any{
		"enabled":       true,
		"timeout":       DefaultGeocodingTimeout.String(),
		"google_url":    "https://maps.googleapis.com/maps/api/geocode/json",
		"nominatim_url": "https://nominatim.openstreetmap.org/search",
	})

	viper.SetDefault("pipeline", map[string]any{
		"validation_enabled": true,
		"workers":            DefaultWorkers,
	})

	viper.SetDefault("stats", map[string]any{
		"report_dir": DefaultStatsDir,
	})
}
