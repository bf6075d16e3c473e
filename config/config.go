// Package config loads per-data-source analysis configuration.
//
// Each data source (web crawl, broadcast archive, data repository) gets
// its own thresholds: sources differ wildly in how many periods they
// cover and how noisy their counts are. Callers take a Source snapshot
// and pass it explicitly into the analysis; nothing reads ambient
// configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration that cannot drive an analysis.
var ErrInvalidConfig = errors.New("invalid configuration")

// Source holds the analysis thresholds for one data source.
type Source struct {
	// MinimumTimePeriods rejects series with fewer observations.
	MinimumTimePeriods int `yaml:"minimum_time_periods"`
	// NumTestMeasurements is the size of the held-out test split.
	NumTestMeasurements int `yaml:"num_test_measurements"`
	// DeclinePeriods is the number of trailing periods whose predicted
	// rate of change is checked for decline.
	DeclinePeriods int `yaml:"decline_periods"`
	// CeilingMultiplier bounds the fitted market potential as a multiple
	// of the observed usage mass.
	CeilingMultiplier float64 `yaml:"ceiling_multiplier"`
	// MaxIterations caps the optimizer's iteration budget.
	MaxIterations int `yaml:"max_iterations"`
}

// Config holds the thresholds for all configured data sources.
type Config struct {
	Sources map[string]Source `yaml:"data"`
}

// DefaultSource returns the default per-source thresholds.
func DefaultSource() Source {
	return Source{
		MinimumTimePeriods:  8,
		NumTestMeasurements: 2,
		DeclinePeriods:      4,
		CeilingMultiplier:   10,
		MaxIterations:       2000,
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses YAML configuration, fills in defaults for omitted fields,
// and validates every source section.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	def := DefaultSource()
	for name, src := range cfg.Sources {
		if src.MinimumTimePeriods == 0 {
			src.MinimumTimePeriods = def.MinimumTimePeriods
		}
		if src.NumTestMeasurements == 0 {
			src.NumTestMeasurements = def.NumTestMeasurements
		}
		if src.DeclinePeriods == 0 {
			src.DeclinePeriods = def.DeclinePeriods
		}
		if src.CeilingMultiplier == 0 {
			src.CeilingMultiplier = def.CeilingMultiplier
		}
		if src.MaxIterations == 0 {
			src.MaxIterations = def.MaxIterations
		}
		if err := src.validate(); err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		cfg.Sources[name] = src
	}

	return &cfg, nil
}

// Source returns the thresholds for the named data source, or the
// defaults when the source is not configured.
func (c *Config) Source(name string) Source {
	if src, ok := c.Sources[name]; ok {
		return src
	}
	return DefaultSource()
}

func (s Source) validate() error {
	if s.MinimumTimePeriods < 1 {
		return fmt.Errorf("%w: minimum_time_periods must be positive", ErrInvalidConfig)
	}
	if s.NumTestMeasurements < 1 {
		return fmt.Errorf("%w: num_test_measurements must be positive", ErrInvalidConfig)
	}
	if s.NumTestMeasurements >= s.MinimumTimePeriods {
		return fmt.Errorf("%w: num_test_measurements %d leaves no training data at minimum length %d",
			ErrInvalidConfig, s.NumTestMeasurements, s.MinimumTimePeriods)
	}
	if s.DeclinePeriods < 2 {
		return fmt.Errorf("%w: decline_periods must be at least 2", ErrInvalidConfig)
	}
	if s.CeilingMultiplier <= 1 {
		return fmt.Errorf("%w: ceiling_multiplier must exceed 1", ErrInvalidConfig)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("%w: max_iterations must be positive", ErrInvalidConfig)
	}
	return nil
}
