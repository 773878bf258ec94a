package scoap

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults for the analysis parameters
const (
	DefaultSaturationCap = 1_000_000
	DefaultMaxIterations = 32
)

// Config holds the tunable analysis parameters
type Config struct {
	// SaturationCap clamps controllability values. Exceeding it is not an
	// error; clamped values are counted and reported informationally.
	SaturationCap int64 `yaml:"saturation_cap"`

	// MaxIterations bounds the sequential convergence loop. Reaching the
	// bound without a fixpoint yields a ConvergenceWarning.
	MaxIterations int `yaml:"max_iterations"`
}

// DefaultConfig returns the default analysis parameters
func DefaultConfig() Config {
	return Config{
		SaturationCap: DefaultSaturationCap,
		MaxIterations: DefaultMaxIterations,
	}
}

// LoadConfig reads a YAML config file. Missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	return cfg.normalized(), nil
}

// normalized replaces out-of-range values with defaults
func (cfg Config) normalized() Config {
	if cfg.SaturationCap <= 0 {
		cfg.SaturationCap = DefaultSaturationCap
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return cfg
}
