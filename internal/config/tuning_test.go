package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyTuningConfig()
	assert.Equal(t, 100000, cfg.GetSimulations())
	assert.Equal(t, 0, cfg.GetWorkers())
	assert.Equal(t, 9, cfg.GetMaxGridRows())
	assert.Equal(t, 9, cfg.GetMaxGridCols())
	assert.Equal(t, int64(0), cfg.GetSeed())
}

func TestLoadTuningConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"simulations": 500, "max_grid_rows": 5}`), 0o644))

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	// Explicit values win; omitted fields keep defaults.
	assert.Equal(t, 500, cfg.GetSimulations())
	assert.Equal(t, 5, cfg.GetMaxGridRows())
	assert.Equal(t, 9, cfg.GetMaxGridCols())
}

func TestLoadTuningConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("wrong extension", func(t *testing.T) {
		_, err := LoadTuningConfig(filepath.Join(dir, "tuning.yaml"))
		assert.ErrorContains(t, err, ".json extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTuningConfig(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, "parse")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"simulations": -1}`), 0o644))
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, "simulations must be positive")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	bad := func(mutate func(*TuningConfig)) *TuningConfig {
		cfg := EmptyTuningConfig()
		mutate(cfg)
		return cfg
	}
	n := func(v int) *int { return &v }

	assert.NoError(t, EmptyTuningConfig().Validate())
	assert.Error(t, bad(func(c *TuningConfig) { c.Simulations = n(0) }).Validate())
	assert.Error(t, bad(func(c *TuningConfig) { c.Workers = n(-1) }).Validate())
	assert.Error(t, bad(func(c *TuningConfig) { c.MaxGridRows = n(0) }).Validate())
	assert.Error(t, bad(func(c *TuningConfig) { c.MaxGridCols = n(0) }).Validate())
	assert.NoError(t, bad(func(c *TuningConfig) { c.Workers = n(0) }).Validate())
}
