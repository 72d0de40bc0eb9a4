package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INPUT_FILE", "data/counts.xlsx")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "data/counts.xlsx", cfg.Input.Path)
	assert.Equal(t, "CellCount", cfg.Input.MeasurementColumn)
	assert.Equal(t, "4 months", cfg.Input.AgeRecode["4m"])
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.Equal(t, "epidermis", cfg.Output.Prefix)
	assert.Equal(t, 0.05, cfg.Stats.SignificanceLevel)
	assert.Equal(t, 1e-10, cfg.Stats.JitterMin)
	assert.Equal(t, 1e-9, cfg.Stats.JitterMax)
	assert.Equal(t, 1200, cfg.Chart.Width)
	assert.Equal(t, "#1b9e77", cfg.Chart.ColorMap["4 months"])
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INPUT_FILE", "counts.csv")
	t.Setenv("MEASUREMENT_COLUMN", "NucleusArea")
	t.Setenv("SIGNIFICANCE_LEVEL", "0.01")
	t.Setenv("AGE_COLORS", "juvenile=#112233,adult=#445566")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "NucleusArea", cfg.Input.MeasurementColumn)
	assert.Equal(t, 0.01, cfg.Stats.SignificanceLevel)
	assert.Equal(t, map[string]string{"juvenile": "#112233", "adult": "#445566"}, cfg.Chart.ColorMap)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing input path", func(t *testing.T) {
		t.Setenv("INPUT_FILE", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("significance level out of range", func(t *testing.T) {
		t.Setenv("INPUT_FILE", "counts.csv")
		t.Setenv("SIGNIFICANCE_LEVEL", "1.5")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("inverted jitter range", func(t *testing.T) {
		t.Setenv("INPUT_FILE", "counts.csv")
		t.Setenv("JITTER_MIN", "1e-8")
		t.Setenv("JITTER_MAX", "1e-10")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestParseColorMap_MalformedPairsSkipped(t *testing.T) {
	m := parseColorMap("a=#111, b=#222 ,broken,=#333,c=")
	assert.Equal(t, map[string]string{"a": "#111", "b": "#222"}, m)
}
