package dataprocessing

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"gasviz/pkg/contracts/domain"
)

// PriceSelector picks one of the two prices of an observation
type PriceSelector func(domain.Observation) domain.Price

// RegularPrice selects the regular price
func RegularPrice(o domain.Observation) domain.Price { return o.RegularPrice }

// PremiumPrice selects the premium price
func PremiumPrice(o domain.Observation) domain.Price { return o.PremiumPrice }

// PrepareTimed parses the query time of every observation and normalizes its
// tag. Rows whose time does not parse are dropped and counted.
func PrepareTimed(observations []domain.Observation) ([]domain.TimedObservation, int) {
	timed := make([]domain.TimedObservation, 0, len(observations))
	dropped := 0

	for _, obs := range observations {
		t, ok := ParseQueryTime(obs.QueryTime)
		if !ok {
			dropped++
			continue
		}
		timed = append(timed, domain.TimedObservation{
			Observation: obs,
			Time:        t,
			Date:        CalendarDate(t),
			Tag:         NormalizeTag(obs.TimeTag),
		})
	}

	return timed, dropped
}

// UniqueTags returns the non-empty tags in order of first appearance
func UniqueTags(timed []domain.TimedObservation) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, obs := range timed {
		if obs.Tag == "" || seen[obs.Tag] {
			continue
		}
		seen[obs.Tag] = true
		tags = append(tags, obs.Tag)
	}
	return tags
}

// DatedValue is one cell of a pivot column
type DatedValue struct {
	Date  time.Time
	Value float64
}

// Pivot holds the mean price for every (date, tag) pair that has at least one
// valid price.
type Pivot struct {
	dates []time.Time
	cells map[string]map[time.Time]float64
}

// PivotMean groups timed observations by (date, tag) and averages the
// selected price. Missing prices do not contribute; rows without a tag are
// ignored.
func PivotMean(timed []domain.TimedObservation, selectPrice PriceSelector) *Pivot {
	samples := make(map[string]map[time.Time][]float64)
	for _, obs := range timed {
		price := selectPrice(obs.Observation)
		if obs.Tag == "" || !price.Valid {
			continue
		}
		byDate, ok := samples[obs.Tag]
		if !ok {
			byDate = make(map[time.Time][]float64)
			samples[obs.Tag] = byDate
		}
		byDate[obs.Date] = append(byDate[obs.Date], price.Value)
	}

	p := &Pivot{cells: make(map[string]map[time.Time]float64, len(samples))}
	dateSet := make(map[time.Time]bool)
	for tag, byDate := range samples {
		means := make(map[time.Time]float64, len(byDate))
		for date, values := range byDate {
			means[date] = stat.Mean(values, nil)
			dateSet[date] = true
		}
		p.cells[tag] = means
	}

	p.dates = make([]time.Time, 0, len(dateSet))
	for date := range dateSet {
		p.dates = append(p.dates, date)
	}
	sort.Slice(p.dates, func(i, j int) bool { return p.dates[i].Before(p.dates[j]) })

	return p
}

// Dates returns the pivot rows in ascending order
func (p *Pivot) Dates() []time.Time {
	return append([]time.Time(nil), p.dates...)
}

// HasTag reports whether the tag has at least one value
func (p *Pivot) HasTag(tag string) bool {
	_, ok := p.cells[tag]
	return ok
}

// Value returns the mean for a (date, tag) cell
func (p *Pivot) Value(date time.Time, tag string) (float64, bool) {
	v, ok := p.cells[tag][date]
	return v, ok
}

// Column returns a tag's values in ascending date order, skipping empty cells
func (p *Pivot) Column(tag string) []DatedValue {
	byDate, ok := p.cells[tag]
	if !ok {
		return nil
	}
	column := make([]DatedValue, 0, len(byDate))
	for _, date := range p.dates {
		if v, ok := byDate[date]; ok {
			column = append(column, DatedValue{Date: date, Value: v})
		}
	}
	return column
}
