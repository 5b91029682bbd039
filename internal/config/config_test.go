package config_test

import (
	"testing"
	"time"

	"fittrack/fitness-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingURI(t *testing.T) {
	_, err := config.LoadConfig(t.TempDir())
	assert.ErrorIs(t, err, config.ErrMissingDatabaseURI)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("SERVER_ADDRESS", ":9090")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "fitness_tracker", cfg.Database.Name)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}
