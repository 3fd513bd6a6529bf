package dataprocessing

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"gasviz/internal/config"
	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

// AggregateResult is the output of AggregateStations
type AggregateResult struct {
	Stations []domain.StationAggregate
	// Dropped counts rows missing at least one price
	Dropped int
}

// AggregateStations decodes every Location cell, drops rows missing either
// price, clips prices to their plausible ranges and averages them per
// (Station ID, Station Name, Latitude, Longitude). Aggregates are returned
// sorted by that key.
//
// Any malformed Location fails the whole aggregation, including rows that
// would have been dropped for missing prices.
func AggregateStations(observations []domain.Observation) (*AggregateResult, error) {
	coords := make([]domain.Coordinates, len(observations))
	for i, obs := range observations {
		c, err := ParseLocation(obs.Location)
		if err != nil {
			if appErr, ok := err.(*apperrors.AppError); ok {
				// first data row is sheet row 2
				return nil, appErr.WithContext("row", i+2).WithContext("station_id", obs.StationID)
			}
			return nil, err
		}
		coords[i] = c
	}

	type samples struct {
		regular []float64
		premium []float64
	}

	result := &AggregateResult{}
	groups := make(map[domain.StationKey]*samples)
	for i, obs := range observations {
		if !obs.RegularPrice.Valid || !obs.PremiumPrice.Valid {
			result.Dropped++
			continue
		}

		key := domain.StationKey{
			StationID:   obs.StationID,
			StationName: obs.StationName,
			Coordinates: coords[i],
		}
		g, ok := groups[key]
		if !ok {
			g = &samples{}
			groups[key] = g
		}
		g.regular = append(g.regular, obs.RegularPrice.Clip(config.RegularPriceMin, config.RegularPriceMax).Value)
		g.premium = append(g.premium, obs.PremiumPrice.Clip(config.PremiumPriceMin, config.PremiumPriceMax).Value)
	}

	result.Stations = make([]domain.StationAggregate, 0, len(groups))
	for key, g := range groups {
		result.Stations = append(result.Stations, domain.StationAggregate{
			StationKey:   key,
			RegularPrice: stat.Mean(g.regular, nil),
			PremiumPrice: stat.Mean(g.premium, nil),
			Observations: len(g.regular),
		})
	}

	sort.Slice(result.Stations, func(i, j int) bool {
		return lessKey(result.Stations[i].StationKey, result.Stations[j].StationKey)
	})

	return result, nil
}

// lessKey orders station keys. IDs that are both numeric compare as numbers.
func lessKey(a, b domain.StationKey) bool {
	if a.StationID != b.StationID {
		return lessID(a.StationID, b.StationID)
	}
	if a.StationName != b.StationName {
		return a.StationName < b.StationName
	}
	if a.Latitude != b.Latitude {
		return a.Latitude < b.Latitude
	}
	return a.Longitude < b.Longitude
}

func lessID(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil && na != nb:
		return na < nb
	case errA == nil && errB != nil:
		return true
	case errA != nil && errB == nil:
		return false
	}
	return a < b
}

// ValueRange returns the min and max of values. ok is false for an empty slice.
func ValueRange(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	return floats.Min(values), floats.Max(values), true
}

// MeanCenter returns the mean coordinates of the aggregates, or (0, 0) when
// there are none.
func MeanCenter(stations []domain.StationAggregate) domain.Coordinates {
	if len(stations) == 0 {
		return domain.Coordinates{}
	}
	lats := make([]float64, len(stations))
	lons := make([]float64, len(stations))
	for i, s := range stations {
		lats[i] = s.Latitude
		lons[i] = s.Longitude
	}
	return domain.Coordinates{Latitude: stat.Mean(lats, nil), Longitude: stat.Mean(lons, nil)}
}
