package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/tourcrawl/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Database:  config.DatabaseConfig{Path: "tourism.db"},
		Geocoding: config.GeocodingConfig{Timeout: 10 * time.Second},
		Pipeline:  config.PipelineConfig{Workers: 4},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""

	require.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.Workers = 0

	require.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Geocoding.Timeout = 0

	require.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config.SetDefaults()

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "tourcrawl", cfg.App.Name)
	assert.Equal(t, config.DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, config.DefaultGeocodingTimeout, cfg.Geocoding.Timeout)
	assert.Equal(t, config.DefaultWorkers, cfg.Pipeline.Workers)
	assert.True(t, cfg.Geocoding.Enabled)
	assert.True(t, cfg.Pipeline.ValidationEnabled)
	assert.Equal(t, ".", cfg.Stats.ReportDir)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config.SetDefaults()
	viper.Set("database.path", "/data/activities.db")
	viper.Set("pipeline.workers", 8)
	viper.Set("geocoding.enabled", false)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/activities.db", cfg.Database.Path)
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.False(t, cfg.Geocoding.Enabled)
}
