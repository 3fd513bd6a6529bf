package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gasviz/internal/errors"
)

// clearEnv unsets every variable the tests touch and restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		ConfigFileEnv,
		"GASVIZ_PATHS_INPUT_FILE", "GASVIZ_PATHS_HEAT_MAP_FILE",
		"GASVIZ_LOGGING_LEVEL", "GASVIZ_LOGGING_OUTPUT", "GASVIZ_LOGGING_FILE_PATH",
		"GASVIZ_METRICS_TEXTFILE_PATH",
		"GASVIZ_PREVIEW_ENABLED", "GASVIZ_PREVIEW_TIMEOUT",
	}
	for _, envVar := range envVars {
		if val, ok := os.LookupEnv(envVar); ok {
			t.Cleanup(func() { os.Setenv(envVar, val) })
		} else {
			t.Cleanup(func() { os.Unsetenv(envVar) })
		}
		os.Unsetenv(envVar)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T)
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name:     "defaults with no env vars",
			setupEnv: func(t *testing.T) {},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultInputFile, cfg.Paths.InputFile)
				assert.Equal(t, DefaultTimeSeriesFile, cfg.Paths.TimeSeriesFile)
				assert.Equal(t, DefaultHeatMapFile, cfg.Paths.HeatMapFile)
				assert.Equal(t, DefaultDashboardFile, cfg.Paths.DashboardFile)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
				assert.False(t, cfg.Preview.Enabled)
				assert.Empty(t, cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "env overrides defaults",
			setupEnv: func(t *testing.T) {
				os.Setenv("GASVIZ_PATHS_INPUT_FILE", "in.xlsx")
				os.Setenv("GASVIZ_LOGGING_LEVEL", "warn")
				os.Setenv("GASVIZ_PREVIEW_ENABLED", "true")
				os.Setenv("GASVIZ_PREVIEW_TIMEOUT", "5s")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "in.xlsx", cfg.Paths.InputFile)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.True(t, cfg.Preview.Enabled)
				assert.Equal(t, 5*time.Second, cfg.Preview.Timeout)
				// untouched fields keep their defaults
				assert.Equal(t, DefaultHeatMapFile, cfg.Paths.HeatMapFile)
			},
		},
		{
			name: "file overrides defaults and env overrides file",
			setupEnv: func(t *testing.T) {
				path := writeConfigFile(t, `
paths:
  input_file: from-file.xlsx
  heat_map_file: out/map.html
logging:
  level: info
metrics:
  textfile_path: out/gasviz.prom
`)
				os.Setenv(ConfigFileEnv, path)
				os.Setenv("GASVIZ_PATHS_INPUT_FILE", "from-env.xlsx")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env.xlsx", cfg.Paths.InputFile)
				assert.Equal(t, "out/map.html", cfg.Paths.HeatMapFile)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "out/gasviz.prom", cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				os.Setenv("GASVIZ_LOGGING_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "malformed config file",
			setupEnv: func(t *testing.T) {
				os.Setenv(ConfigFileEnv, writeConfigFile(t, "paths: [unclosed"))
			},
			wantErr: true,
		},
		{
			name: "empty output path",
			setupEnv: func(t *testing.T) {
				os.Setenv(ConfigFileEnv, writeConfigFile(t, "paths:\n  heat_map_file: \"\"\n"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig), err.Error())
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestPreviewPath(t *testing.T) {
	assert.Equal(t, "output/heatmap.png", PreviewPath("output/heatmap.html"))
	assert.Equal(t, "./output/interactive_graph.png", PreviewPath("./output/interactive_graph.html"))
}

func TestOutputs(t *testing.T) {
	paths := PathsConfig{
		InputFile:      "in.xlsx",
		TimeSeriesFile: "a/ts.png",
		HeatMapFile:    "b/map.html",
		DashboardFile:  "b/dash.html",
	}
	assert.Equal(t, []string{"a/ts.png", "b/map.html", "b/dash.html"}, paths.Outputs())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}

func TestTagColor(t *testing.T) {
	assert.Equal(t, "orange", TagColor("morning"))
	assert.Equal(t, "purple", TagColor("midnight"))
	assert.Equal(t, UnknownTagColor, TagColor("dawn"))
	assert.Equal(t, UnknownTagColor, TagColor("Morning"))
}
