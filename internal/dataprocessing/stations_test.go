package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

func stationObs(id, name, location string, regular, premium domain.Price) domain.Observation {
	return domain.Observation{
		StationID:    id,
		StationName:  name,
		Location:     location,
		RegularPrice: regular,
		PremiumPrice: premium,
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    domain.Coordinates
		wantErr string
	}{
		{name: "quoted mapping", cell: "{'Latitude': 43.65, 'Longitude': -79.38}", want: domain.Coordinates{Latitude: 43.65, Longitude: -79.38}},
		{name: "json", cell: `{"Latitude": 45, "Longitude": -75.5}`, want: domain.Coordinates{Latitude: 45, Longitude: -75.5}},
		{name: "extra keys", cell: "{'Latitude': 1.5, 'Longitude': 2.5, 'Source': 'gps'}", want: domain.Coordinates{Latitude: 1.5, Longitude: 2.5}},
		{name: "empty", cell: "  ", wantErr: "empty location"},
		{name: "missing longitude", cell: "{'Latitude': 43.65}", wantErr: "missing Longitude"},
		{name: "not a mapping", cell: "downtown", wantErr: "malformed location"},
		{name: "unbalanced", cell: "{'Latitude': 43.65, ", wantErr: "malformed location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.cell)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateStations(t *testing.T) {
	loc := "{'Latitude': 43.6, 'Longitude': -79.3}"
	result, err := AggregateStations([]domain.Observation{
		stationObs("10", "B", loc, domain.NewPrice(120), domain.NewPrice(160)),
		stationObs("2", "A", loc, domain.NewPrice(250), domain.NewPrice(100)),
		stationObs("10", "B", loc, domain.NewPrice(140), domain.NewPrice(180)),
		stationObs("2", "A", loc, domain.NewPrice(130), domain.MissingPrice()),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Dropped)
	require.Len(t, result.Stations, 2)

	// numeric IDs sort as numbers
	a := result.Stations[0]
	assert.Equal(t, "2", a.StationID)
	assert.Equal(t, 200.0, a.RegularPrice, "regular clipped to upper bound")
	assert.Equal(t, 150.0, a.PremiumPrice, "premium clipped to lower bound")
	assert.Equal(t, 1, a.Observations)

	b := result.Stations[1]
	assert.Equal(t, "10", b.StationID)
	assert.InDelta(t, 130.0, b.RegularPrice, 1e-9)
	assert.InDelta(t, 170.0, b.PremiumPrice, 1e-9)
	assert.Equal(t, 2, b.Observations)
}

func TestAggregateStations_SeparatesByCoordinates(t *testing.T) {
	result, err := AggregateStations([]domain.Observation{
		stationObs("1", "Same", "{'Latitude': 1, 'Longitude': 1}", domain.NewPrice(120), domain.NewPrice(160)),
		stationObs("1", "Same", "{'Latitude': 1, 'Longitude': 2}", domain.NewPrice(130), domain.NewPrice(170)),
	})
	require.NoError(t, err)
	require.Len(t, result.Stations, 2)
	assert.Equal(t, 1.0, result.Stations[0].Longitude)
	assert.Equal(t, 2.0, result.Stations[1].Longitude)
}

func TestAggregateStations_MalformedLocationIsFatal(t *testing.T) {
	_, err := AggregateStations([]domain.Observation{
		stationObs("1", "Good", "{'Latitude': 1, 'Longitude': 1}", domain.NewPrice(120), domain.NewPrice(160)),
		// dropped for its price, but its location is still checked
		stationObs("2", "Bad", "nowhere", domain.MissingPrice(), domain.MissingPrice()),
	})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 3, appErr.Context["row"])
	assert.Equal(t, "2", appErr.Context["station_id"])
}

func TestAggregateStations_Empty(t *testing.T) {
	result, err := AggregateStations(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Stations)
	assert.Equal(t, 0, result.Dropped)
}

func TestLessID(t *testing.T) {
	assert.True(t, lessID("2", "10"))
	assert.False(t, lessID("10", "2"))
	assert.True(t, lessID("9", "A1"), "numeric before text")
	assert.True(t, lessID("A1", "B0"))
}

func TestValueRange(t *testing.T) {
	lo, hi, ok := ValueRange([]float64{130, 110, 190})
	require.True(t, ok)
	assert.Equal(t, 110.0, lo)
	assert.Equal(t, 190.0, hi)

	_, _, ok = ValueRange(nil)
	assert.False(t, ok)
}

func TestMeanCenter(t *testing.T) {
	assert.Equal(t, domain.Coordinates{}, MeanCenter(nil))

	center := MeanCenter([]domain.StationAggregate{
		{StationKey: domain.StationKey{Coordinates: domain.Coordinates{Latitude: 40, Longitude: -80}}},
		{StationKey: domain.StationKey{Coordinates: domain.Coordinates{Latitude: 42, Longitude: -78}}},
	})
	assert.InDelta(t, 41.0, center.Latitude, 1e-9)
	assert.InDelta(t, -79.0, center.Longitude, 1e-9)
}
