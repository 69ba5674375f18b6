package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "defensecli/internal/errors"
	"defensecli/internal/validation"
)

// EnvPrefix namespaces every environment variable, e.g. DEFENSE_LOGGING_LEVEL.
const EnvPrefix = "DEFENSE"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains file system paths configuration. Relative paths are
// resolved against the working directory.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	ChartsDir string `yaml:"charts_dir" envconfig:"CHARTS_DIR"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AnalysisConfig controls the charts produced from the merged table
type AnalysisConfig struct {
	RadarMin      float64  `yaml:"radar_min" envconfig:"RADAR_MIN" validate:"gte=0,nefield=RadarMax"`
	RadarMax      float64  `yaml:"radar_max" envconfig:"RADAR_MAX" validate:"gt=0"`
	InvertRadar   bool     `yaml:"invert_radar" envconfig:"INVERT_RADAR"`
	Subdivisions  int      `yaml:"subdivisions" envconfig:"SUBDIVISIONS" validate:"min=2,max=20"`
	HistogramBins int      `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS" validate:"min=1,max=200"`
	RadarSize     int      `yaml:"radar_size" envconfig:"RADAR_SIZE" validate:"min=200"`
	ChartFormat   string   `yaml:"chart_format" envconfig:"CHART_FORMAT" validate:"oneof=png svg"`
	Players       []string `yaml:"players" envconfig:"PLAYERS"`
	EliteTotal    int      `yaml:"elite_total" envconfig:"ELITE_TOTAL" validate:"gte=0,lte=7"`
}

// RadarBounds returns the axis range as (center, edge). Inverted radars put
// the lower, better values on the outer edge.
func (a AnalysisConfig) RadarBounds() (float64, float64) {
	lo, hi := a.RadarMin, a.RadarMax
	if lo > hi {
		lo, hi = hi, lo
	}
	if a.InvertRadar {
		return hi, lo
	}
	return lo, hi
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the first config file found when path is empty), then environment
// variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("load config file %s", path), err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file
// keep their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate checks every section against its validate tags
func (c *Config) Validate() error {
	if err := validation.NewStructValidator().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the first config file found in the usual locations
func getConfigFilePath() string {
	locations := []string{
		"defense.yaml",
		"configs/defense.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/defense-report.log",
		},
		Paths: PathsConfig{
			DataDir:   "data",
			OutputDir: "output",
			ChartsDir: "output/charts",
			LogsDir:   "logs",
		},
		Analysis: AnalysisConfig{
			RadarMin:      0.01,
			RadarMax:      1.5,
			InvertRadar:   true,
			Subdivisions:  6,
			HistogramBins: 30,
			RadarSize:     600,
			ChartFormat:   "png",
			EliteTotal:    6,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "defense-report",
			TraceExporter: "none",
			EnableMetrics: true,
		},
	}
}
