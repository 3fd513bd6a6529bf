package visualization

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"

	"gasviz/internal/config"
	"gasviz/internal/dataprocessing"
	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

//go:embed templates/heatmap.html
var templateFS embed.FS

var heatMapTemplate = template.Must(template.ParseFS(templateFS, "templates/heatmap.html"))

// HeatMap is the data behind the heat-map page
type HeatMap struct {
	Center domain.Coordinates
	Zoom   int
	// Layers holds the layers that have a usable price range
	Layers []HeatMapLayer
	// Skipped holds the layers omitted because min == max
	Skipped []SkippedLayer
	// Stations is the number of station aggregates
	Stations int
	// Dropped counts rows missing a price
	Dropped int
}

// HeatMapLayer is one toggleable group of station markers plus its legend
type HeatMapLayer struct {
	Name    string   `json:"name"`
	Legend  string   `json:"legend"`
	Markers []Marker `json:"markers"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
}

// Marker is one station circle
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
}

// SkippedLayer describes a layer left out of the page
type SkippedLayer struct {
	Name     string
	Min      float64
	Max      float64
	Stations int
}

type heatMapLayerDef struct {
	name       string
	priceLabel string
	colors     []string
	price      func(domain.StationAggregate) float64
}

var heatMapLayers = []heatMapLayerDef{
	{
		name:       config.TitleRegularLayer,
		priceLabel: "Regular Price",
		colors:     config.RegularScaleColors,
		price:      func(s domain.StationAggregate) float64 { return s.RegularPrice },
	},
	{
		name:       config.TitlePremiumLayer,
		priceLabel: "Premium Price",
		colors:     config.PremiumScaleColors,
		price:      func(s domain.StationAggregate) float64 { return s.PremiumPrice },
	},
}

// BuildHeatMap aggregates the observations per station and builds one layer
// per fuel type. A malformed Location cell is returned as an error.
func BuildHeatMap(observations []domain.Observation) (*HeatMap, error) {
	agg, err := dataprocessing.AggregateStations(observations)
	if err != nil {
		return nil, err
	}

	hm := &HeatMap{
		Center:   dataprocessing.MeanCenter(agg.Stations),
		Zoom:     config.MapZoom,
		Layers:   []HeatMapLayer{},
		Stations: len(agg.Stations),
		Dropped:  agg.Dropped,
	}

	for _, def := range heatMapLayers {
		values := make([]float64, len(agg.Stations))
		for i, s := range agg.Stations {
			values[i] = def.price(s)
		}

		lo, hi, _ := dataprocessing.ValueRange(values)
		if !(lo < hi) {
			hm.Skipped = append(hm.Skipped, SkippedLayer{Name: def.name, Min: lo, Max: hi, Stations: len(values)})
			continue
		}

		layer, err := buildLayer(def, agg.Stations, lo, hi)
		if err != nil {
			return nil, err
		}
		hm.Layers = append(hm.Layers, *layer)
	}

	return hm, nil
}

func buildLayer(def heatMapLayerDef, stations []domain.StationAggregate, lo, hi float64) (*HeatMapLayer, error) {
	scale, err := NewLinearColorScale(def.colors, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s scale: %w", def.name, err)
	}

	legend, err := LegendDataURI(scale, def.name)
	if err != nil {
		return nil, fmt.Errorf("failed to draw %s legend: %w", def.name, err)
	}

	layer := &HeatMapLayer{
		Name:    def.name,
		Legend:  legend,
		Markers: make([]Marker, 0, len(stations)),
		Min:     lo,
		Max:     hi,
	}
	for _, s := range stations {
		price := def.price(s)
		color, err := scale.Hex(price)
		if err != nil {
			return nil, fmt.Errorf("failed to color station %s: %w", s.StationID, err)
		}
		layer.Markers = append(layer.Markers, Marker{
			Lat:   s.Latitude,
			Lon:   s.Longitude,
			Color: color,
			Popup: fmt.Sprintf("Station: %s<br>%s: %.2f", html.EscapeString(s.StationName), def.priceLabel, price),
		})
	}
	return layer, nil
}

type heatMapPage struct {
	Title       string
	Center      domain.Coordinates
	Zoom        int
	Radius      int
	FillOpacity float64
	Layers      []HeatMapLayer
}

// WriteHTML renders the Leaflet page
func (hm *HeatMap) WriteHTML(w io.Writer) error {
	layers := hm.Layers
	if layers == nil {
		layers = []HeatMapLayer{}
	}
	page := heatMapPage{
		Title:       "Gas Price Heat Map",
		Center:      hm.Center,
		Zoom:        hm.Zoom,
		Radius:      config.MarkerRadius,
		FillOpacity: config.MarkerFillOpacity,
		Layers:      layers,
	}
	if err := heatMapTemplate.Execute(w, page); err != nil {
		return apperrors.NewRenderError("failed to render heat map", err)
	}
	return nil
}
