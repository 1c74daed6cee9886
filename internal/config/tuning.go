// Package config loads the simulation tuning file. The schema matches
// the estimator's knobs so the same JSON can be used for local runs and
// deployed instances; fields omitted from the file keep their defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the estimator and boundary tuning parameters.
// Pointer fields distinguish "unset" from zero; the Get* methods supply
// the defaults.
type TuningConfig struct {
	// Simulations is the Monte-Carlo trial count per estimate.
	Simulations *int `json:"simulations,omitempty"`
	// Workers sizes the trial worker pool. 0 means one per CPU.
	Workers *int `json:"workers,omitempty"`
	// MaxGridRows / MaxGridCols cap the mask accepted by the API.
	MaxGridRows *int `json:"max_grid_rows,omitempty"`
	MaxGridCols *int `json:"max_grid_cols,omitempty"`
	// Seed derives the per-worker PRNG streams. 0 means time-based.
	Seed *int64 `json:"seed,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under 1MB. Fields omitted from the
// JSON keep their default values, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *TuningConfig) Validate() error {
	if c.Simulations != nil && *c.Simulations <= 0 {
		return fmt.Errorf("simulations must be positive, got %d", *c.Simulations)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.MaxGridRows != nil && *c.MaxGridRows < 1 {
		return fmt.Errorf("max_grid_rows must be at least 1, got %d", *c.MaxGridRows)
	}
	if c.MaxGridCols != nil && *c.MaxGridCols < 1 {
		return fmt.Errorf("max_grid_cols must be at least 1, got %d", *c.MaxGridCols)
	}
	return nil
}

// GetSimulations returns the trial count or the default.
func (c *TuningConfig) GetSimulations() int {
	if c.Simulations == nil {
		return 100000 // default
	}
	return *c.Simulations
}

// GetWorkers returns the worker pool size, 0 meaning one per CPU.
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0 // default: one worker per CPU
	}
	return *c.Workers
}

// GetMaxGridRows returns the row cap for API requests.
func (c *TuningConfig) GetMaxGridRows() int {
	if c.MaxGridRows == nil {
		return 9 // default
	}
	return *c.MaxGridRows
}

// GetMaxGridCols returns the column cap for API requests.
func (c *TuningConfig) GetMaxGridCols() int {
	if c.MaxGridCols == nil {
		return 9 // default
	}
	return *c.MaxGridCols
}

// GetSeed returns the PRNG seed, 0 meaning time-based.
func (c *TuningConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 0 // default: seed from wall clock
	}
	return *c.Seed
}
