package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/tourcrawl/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config logger.Config
	}{
		{"defaults", logger.Config{}},
		{"json encoding", logger.Config{Level: logger.DebugLevel, Encoding: "json"}},
		{"console encoding", logger.Config{Level: logger.WarnLevel, Encoding: "console"}},
		{"development", logger.Config{Level: logger.DebugLevel, Development: true}},
		{"unknown level falls back to info", logger.Config{Level: "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.New(&tt.config)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestWithHelpers(t *testing.T) {
	log, err := logger.New(&logger.Config{Encoding: "json"})
	require.NoError(t, err)

	assert.NotNil(t, log.With("key", "value"))
	assert.NotNil(t, log.WithComponent("pipeline"))
	assert.NotNil(t, log.WithError(assert.AnError))
}

func TestNoOp(t *testing.T) {
	log := logger.NewNoOp()

	// Must be safe to call with any arguments.
	log.Debug("msg")
	log.Info("msg", "key", "value")
	log.Warn("msg", "dangling-key")
	log.Error("msg", 42)

	assert.NotNil(t, log.With("key", "value"))
	assert.NotNil(t, log.WithComponent("test"))
}
