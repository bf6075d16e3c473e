package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
data:
  kb:
    minimum_time_periods: 100
    num_test_measurements: 12
    decline_periods: 10
  dans:
    minimum_time_periods: 8
    num_test_measurements: 2
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	kb := cfg.Source("kb")
	assert.Equal(t, 100, kb.MinimumTimePeriods)
	assert.Equal(t, 12, kb.NumTestMeasurements)
	assert.Equal(t, 10, kb.DeclinePeriods)
	// Omitted fields fall back to defaults
	assert.Equal(t, DefaultSource().CeilingMultiplier, kb.CeilingMultiplier)
	assert.Equal(t, DefaultSource().MaxIterations, kb.MaxIterations)

	dans := cfg.Source("dans")
	assert.Equal(t, 8, dans.MinimumTimePeriods)
	assert.Equal(t, DefaultSource().DeclinePeriods, dans.DeclinePeriods)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "data: ["},
		{"test split swallows minimum", "data:\n  kb:\n    minimum_time_periods: 4\n    num_test_measurements: 6\n"},
		{"negative minimum", "data:\n  kb:\n    minimum_time_periods: -1\n"},
		{"decline periods too small", "data:\n  kb:\n    decline_periods: 1\n"},
		{"ceiling multiplier too small", "data:\n  kb:\n    ceiling_multiplier: 0.5\n"},
		{"negative iterations", "data:\n  kb:\n    max_iterations: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSourceFallback(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultSource(), cfg.Source("unknown"))
}

func TestDefaultSourceIsValid(t *testing.T) {
	assert.NoError(t, DefaultSource().validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  nibg:\n    decline_periods: 6\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Source("nibg").DeclinePeriods)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
