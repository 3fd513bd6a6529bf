package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Outputs returns the three renderer output paths in pipeline order
func (p PathsConfig) Outputs() []string {
	return []string{p.TimeSeriesFile, p.HeatMapFile, p.DashboardFile}
}

// PreviewPath returns the screenshot path for an HTML output: heatmap.html -> heatmap.png
func PreviewPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".png"
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
