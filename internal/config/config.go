package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "gasviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
	Preview PreviewConfig `yaml:"preview" envconfig:"PREVIEW"`
}

// PathsConfig contains the input and output file locations
type PathsConfig struct {
	InputFile      string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	TimeSeriesFile string `yaml:"time_series_file" envconfig:"TIME_SERIES_FILE" validate:"required"`
	HeatMapFile    string `yaml:"heat_map_file" envconfig:"HEAT_MAP_FILE" validate:"required"`
	DashboardFile  string `yaml:"dashboard_file" envconfig:"DASHBOARD_FILE" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
	// Color enables tinted console output
	Color bool `yaml:"color" envconfig:"COLOR"`
}

// MetricsConfig controls the Prometheus textfile written at the end of a run
type MetricsConfig struct {
	// TextfilePath is where run metrics are written; empty disables them
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// PreviewConfig controls headless-browser screenshots of the HTML outputs
type PreviewConfig struct {
	Enabled bool          `yaml:"enabled" envconfig:"ENABLED"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
}

// Load loads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	// Overlay the config file if one exists
	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).WithContext("path", configFile)
		}
	}

	// Environment variables win over file values. No default tags are used,
	// so unset variables leave the field untouched.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML configuration onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file, or "" when none exists
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
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
		Paths: PathsConfig{
			InputFile:      DefaultInputFile,
			TimeSeriesFile: DefaultTimeSeriesFile,
			HeatMapFile:    DefaultHeatMapFile,
			DashboardFile:  DefaultDashboardFile,
		},
		Logging: LoggingConfig{
			Level:    "debug",
			Output:   "both",
			FilePath: DefaultLogFile,
			Color:    true,
		},
		Preview: PreviewConfig{
			Enabled: false,
			Timeout: DefaultPreviewTimeout,
		},
	}
}
