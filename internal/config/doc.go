// Package config provides configuration for the gas price visualizer.
//
// # Configuration Sources
//
// Configuration is resolved in the following order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (config.yaml, configs/config.yaml or $GASVIZ_CONFIG)
//	3. Default values (lowest priority)
//
// With nothing set, the tool reads ./data/cleaned_gas_prices.xlsx, appends to
// ./log/debug_log.txt and writes its three outputs under ./output/.
//
// # Environment Variables
//
// All environment variables follow the pattern GASVIZ_<SECTION>_<FIELD>:
//
//	GASVIZ_PATHS_INPUT_FILE=./data/cleaned_gas_prices.xlsx
//	GASVIZ_LOGGING_LEVEL=info
//	GASVIZ_METRICS_TEXTFILE_PATH=./output/gasviz.prom
//	GASVIZ_PREVIEW_ENABLED=true
//
// # Validation
//
// The merged configuration is validated with go-playground/validator struct tags.
package config
