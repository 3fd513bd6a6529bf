package config

import "time"

// Application constants for the gas price visualizer
const (
	// Application Info
	AppName    = "gasviz"
	AppVersion = "1.0.0"

	// Environment prefix for envconfig (GASVIZ_PATHS_INPUT_FILE, ...)
	EnvPrefix     = "GASVIZ"
	// ConfigFileEnv names an explicit YAML config file
	ConfigFileEnv = "GASVIZ_CONFIG"

	// Default file locations, relative to the working directory
	DefaultInputFile      = "./data/cleaned_gas_prices.xlsx"
	DefaultLogFile        = "./log/debug_log.txt"
	DefaultTimeSeriesFile = "./output/time_series.png"
	DefaultHeatMapFile    = "./output/heatmap.html"
	DefaultDashboardFile  = "./output/interactive_graph.html"

	// Price clipping bounds applied before the heat-map aggregation (cents/liter)
	RegularPriceMin = 100.0
	RegularPriceMax = 200.0
	PremiumPriceMin = 150.0
	PremiumPriceMax = 250.0

	// Heat map
	MapZoom           = 12
	MarkerRadius      = 7
	MarkerFillOpacity = 0.8

	// Time series image
	TimeSeriesWidthInches  = 12
	TimeSeriesHeightInches = 6
	TimeSeriesDPI          = 300

	// Dashboard
	DashboardHeightPx   = 1600
	DashboardMarkerSize = 9

	// Preview capture
	DefaultPreviewTimeout = 30 * time.Second
	// chromedp encodes PNG only at quality 100, anything lower is JPEG
	PreviewQuality = 100
)

// Axis and title text shared by the renderers
const (
	LabelDate  = "Date"
	LabelPrice = "Price (cents/liter)"

	TitleTimeSeries      = "Gas Price Trends by Time of Day"
	TitleDashboard       = "Gas Prices by Time of Day and Type (Interactive)"
	TitleRegularLayer    = "Regular Gas Prices"
	TitlePremiumLayer    = "Premium Gas Prices"
	TitleDashboardLegend = "Fuel Type & Time Tag"
)

// Color stops of the heat-map scales
var (
	RegularScaleColors = []string{"green", "yellow", "red"}
	PremiumScaleColors = []string{"blue", "purple", "pink"}
)

// TimeTagColors maps a normalized time tag to its dashboard marker color.
// Tags not listed here use UnknownTagColor.
var TimeTagColors = map[string]string{
	"morning":   "orange",
	"afternoon": "green",
	"evening":   "blue",
	"midnight":  "purple",
}

// UnknownTagColor is the marker color for unlisted time tags
const UnknownTagColor = "gray"

// TagColor returns the dashboard color for a normalized tag
func TagColor(tag string) string {
	if c, ok := TimeTagColors[tag]; ok {
		return c
	}
	return UnknownTagColor
}
