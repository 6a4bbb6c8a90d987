package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "pricing.db", cfg.Database.Path)
	assert.Equal(t, "models", cfg.Artifacts.Dir)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Empty(t, cfg.Cache.Addr)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
	assert.Equal(t, 100.0, cfg.Demand.BaseDemand)
	assert.Equal(t, -1.5, cfg.Demand.Elasticity)
	assert.Equal(t, 20000, cfg.Train.Timesteps)
	assert.Equal(t, 0.1, cfg.Train.Alpha)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
database:
  path: /tmp/other.db
train:
  timesteps: 500
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, 500, cfg.Train.Timesteps)
	// untouched keys keep their defaults
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
