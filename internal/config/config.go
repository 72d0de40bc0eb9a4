package config

import (
	"os"
	"strconv"
	"strings"

	"axostats/internal/errors"
)

// Config collects every per-script literal of the original analysis
// (paths, colors, thresholds) into named fields, loaded from environment
// variables with study defaults.
type Config struct {
	Input  InputConfig
	Output OutputConfig
	Stats  StatsConfig
	Chart  ChartConfig
}

// InputConfig holds the dataset source settings
type InputConfig struct {
	Path              string `validate:"required"`
	MeasurementColumn string
	AgeColumn         string
	RegionColumn      string
	AgeRecode         map[string]string
}

// OutputConfig holds export destinations
type OutputConfig struct {
	Dir    string
	Prefix string
}

// StatsConfig holds test thresholds and the KS jitter interval
type StatsConfig struct {
	SignificanceLevel float64
	JitterMin         float64
	JitterMax         float64
	JitterSeed        int64
}

// ChartConfig holds image geometry and the Age color mapping
type ChartConfig struct {
	Width      int
	Height     int
	ColorMap   map[string]string // Age label -> hex color, explicit, not positional
	ECDFZoomLo float64
	ECDFZoomHi float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Input: InputConfig{
			Path:              os.Getenv("INPUT_FILE"),
			MeasurementColumn: getEnvOrDefault("MEASUREMENT_COLUMN", "CellCount"),
			AgeColumn:         getEnvOrDefault("AGE_COLUMN", "Age"),
			RegionColumn:      getEnvOrDefault("REGION_COLUMN", "Region"),
			AgeRecode: map[string]string{
				"4m":  "4 months",
				"24m": "24 months",
				"48m": "48 months",
			},
		},
		Output: OutputConfig{
			Dir:    getEnvOrDefault("OUTPUT_DIR", "results"),
			Prefix: getEnvOrDefault("OUTPUT_PREFIX", "epidermis"),
		},
		Stats: StatsConfig{
			SignificanceLevel: getEnvFloatOrDefault("SIGNIFICANCE_LEVEL", 0.05),
			JitterMin:         getEnvFloatOrDefault("JITTER_MIN", 1e-10),
			JitterMax:         getEnvFloatOrDefault("JITTER_MAX", 1e-9),
			JitterSeed:        int64(getEnvIntOrDefault("JITTER_SEED", 0)),
		},
		Chart: ChartConfig{
			Width:  getEnvIntOrDefault("CHART_WIDTH", 1200),
			Height: getEnvIntOrDefault("CHART_HEIGHT", 900),
			ColorMap: parseColorMap(getEnvOrDefault("AGE_COLORS",
				"4 months=#1b9e77,24 months=#d95f02,48 months=#7570b3")),
			ECDFZoomLo: getEnvFloatOrDefault("ECDF_ZOOM_LO", 0),
			ECDFZoomHi: getEnvFloatOrDefault("ECDF_ZOOM_HI", 0),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Input.Path == "" {
		return errors.ConfigInvalid("INPUT_FILE is required")
	}
	if cfg.Stats.SignificanceLevel <= 0 || cfg.Stats.SignificanceLevel >= 1 {
		return errors.ConfigInvalid("SIGNIFICANCE_LEVEL must be in (0, 1)")
	}
	if cfg.Stats.JitterMin <= 0 || cfg.Stats.JitterMax <= cfg.Stats.JitterMin {
		return errors.ConfigInvalid("jitter range must satisfy 0 < JITTER_MIN < JITTER_MAX")
	}
	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		return errors.ConfigInvalid("chart dimensions must be positive")
	}
	return nil
}

// parseColorMap parses "label=#rrggbb,label=#rrggbb" pairs.
func parseColorMap(raw string) map[string]string {
	m := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			m[parts[0]] = parts[1]
		}
	}
	return m
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
