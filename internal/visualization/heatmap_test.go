package visualization

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gasviz/internal/config"
	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

func stationRow(id, name string, lat, lon float64, regular, premium domain.Price) domain.Observation {
	return domain.Observation{
		StationID:    id,
		StationName:  name,
		Location:     locationCell(lat, lon),
		TimeTag:      "morning",
		QueryTime:    "2024-05-01 08:00:00",
		RegularPrice: regular,
		PremiumPrice: premium,
	}
}

func locationCell(lat, lon float64) string {
	return fmt.Sprintf("{'Latitude': %v, 'Longitude': %v}", lat, lon)
}

func TestBuildHeatMap(t *testing.T) {
	hm, err := BuildHeatMap([]domain.Observation{
		stationRow("1", "A & B", 43.0, -79.0, domain.NewPrice(120), domain.NewPrice(160)),
		stationRow("1", "A & B", 43.0, -79.0, domain.NewPrice(140), domain.NewPrice(180)),
		stationRow("2", "C", 45.0, -81.0, domain.NewPrice(180), domain.NewPrice(240)),
		stationRow("3", "D", 44.0, -80.0, domain.NewPrice(150), domain.MissingPrice()),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, hm.Stations)
	assert.Equal(t, 1, hm.Dropped)
	assert.Equal(t, config.MapZoom, hm.Zoom)
	assert.InDelta(t, 44.0, hm.Center.Latitude, 1e-9)
	assert.InDelta(t, -80.0, hm.Center.Longitude, 1e-9)
	assert.Empty(t, hm.Skipped)

	require.Len(t, hm.Layers, 2)
	regular := hm.Layers[0]
	assert.Equal(t, "Regular Gas Prices", regular.Name)
	assert.Equal(t, 130.0, regular.Min)
	assert.Equal(t, 180.0, regular.Max)
	assert.True(t, strings.HasPrefix(regular.Legend, "data:image/png;base64,"))

	require.Len(t, regular.Markers, 2)
	assert.Equal(t, "Station: A &amp; B<br>Regular Price: 130.00", regular.Markers[0].Popup)
	assert.Equal(t, "#008000", regular.Markers[0].Color)
	assert.Equal(t, "#ff0000", regular.Markers[1].Color)

	premium := hm.Layers[1]
	assert.Equal(t, "Premium Gas Prices", premium.Name)
	assert.Equal(t, "Station: C<br>Premium Price: 240.00", premium.Markers[1].Popup)
	assert.Equal(t, "#0000ff", premium.Markers[0].Color)
}

func TestBuildHeatMap_DegenerateLayerSkipped(t *testing.T) {
	hm, err := BuildHeatMap([]domain.Observation{
		stationRow("1", "A", 43.0, -79.0, domain.NewPrice(150), domain.NewPrice(160)),
		stationRow("2", "B", 44.0, -80.0, domain.NewPrice(150), domain.NewPrice(200)),
	})
	require.NoError(t, err)

	require.Len(t, hm.Layers, 1)
	assert.Equal(t, "Premium Gas Prices", hm.Layers[0].Name)

	require.Len(t, hm.Skipped, 1)
	assert.Equal(t, SkippedLayer{Name: "Regular Gas Prices", Min: 150, Max: 150, Stations: 2}, hm.Skipped[0])

	var buf bytes.Buffer
	require.NoError(t, hm.WriteHTML(&buf))
	page := buf.String()
	assert.Contains(t, page, "Premium Gas Prices")
	assert.NotContains(t, page, "Regular Gas Prices")
}

func TestBuildHeatMap_NoStations(t *testing.T) {
	hm, err := BuildHeatMap([]domain.Observation{
		stationRow("1", "A", 43.0, -79.0, domain.MissingPrice(), domain.NewPrice(160)),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Coordinates{}, hm.Center)
	assert.Empty(t, hm.Layers)
	assert.Len(t, hm.Skipped, 2)

	var buf bytes.Buffer
	require.NoError(t, hm.WriteHTML(&buf))
	assert.Contains(t, buf.String(), "var layers = []")
}

func TestBuildHeatMap_MalformedLocation(t *testing.T) {
	row := stationRow("1", "A", 0, 0, domain.NewPrice(150), domain.NewPrice(160))
	row.Location = "{'Latitude': 43.0"

	_, err := BuildHeatMap([]domain.Observation{row})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestHeatMap_WriteHTML(t *testing.T) {
	hm, err := BuildHeatMap([]domain.Observation{
		stationRow("1", "<North>", 43.0, -79.0, domain.NewPrice(120), domain.NewPrice(160)),
		stationRow("2", "South", 44.0, -80.0, domain.NewPrice(180), domain.NewPrice(200)),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hm.WriteHTML(&buf))
	page := buf.String()

	assert.Contains(t, page, "leaflet@1.9.4/dist/leaflet.js")
	// numbers in script context are padded with spaces by html/template
	assert.Regexp(t, `setView\(\[\s*43\.5\s*,\s*-79\.5\s*\],\s*12\s*\)`, page)
	assert.Regexp(t, `radius:\s*7\s*,`, page)
	assert.Regexp(t, `fillOpacity:\s*0\.8\s`, page)
	assert.Contains(t, page, "L.control.layers(null, overlays")
	assert.NotContains(t, page, "<North>", "station names must be escaped")
}

func TestHeatMap_WriteHTMLFailure(t *testing.T) {
	hm, err := BuildHeatMap([]domain.Observation{
		stationRow("1", "North", 43.0, -79.0, domain.NewPrice(120), domain.NewPrice(160)),
		stationRow("2", "South", 44.0, -80.0, domain.NewPrice(180), domain.NewPrice(200)),
	})
	require.NoError(t, err)

	err = hm.WriteHTML(failingWriter{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))
}
