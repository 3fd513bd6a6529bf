package domain

import (
	"fmt"
	"time"
)

// Column names of the cleaned gas price workbook.
const (
	ColumnStationID    = "Station ID"
	ColumnStationName  = "Station Name"
	ColumnAddress      = "Address"
	ColumnLocation     = "Location"
	ColumnTimeTag      = "Time Tag"
	ColumnQueryTime    = "Query Time"
	ColumnRegularPrice = "Regular Price"
	ColumnPremiumPrice = "Premium Price"
)

// ObservationColumns lists the workbook columns in the order they are read.
var ObservationColumns = []string{
	ColumnStationID,
	ColumnStationName,
	ColumnAddress,
	ColumnLocation,
	ColumnTimeTag,
	ColumnQueryTime,
	ColumnRegularPrice,
	ColumnPremiumPrice,
}

// Price is an optional price in cents per liter.
// An empty or non-numeric spreadsheet cell yields a Price with Valid == false.
type Price struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewPrice returns a valid price
func NewPrice(v float64) Price {
	return Price{Value: v, Valid: true}
}

// MissingPrice returns a price that is not set
func MissingPrice() Price {
	return Price{}
}

// Clip returns the price pulled into [lower, upper]. Missing prices stay missing.
func (p Price) Clip(lower, upper float64) Price {
	if !p.Valid {
		return p
	}
	switch {
	case p.Value < lower:
		p.Value = lower
	case p.Value > upper:
		p.Value = upper
	}
	return p
}

// String formats the price with two decimals, or "NaN" when missing
func (p Price) String() string {
	if !p.Valid {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", p.Value)
}

// Observation is one row of the source workbook.
// Location and QueryTime are kept as the raw cell text; each renderer parses
// them on its own copy.
type Observation struct {
	StationID    string `json:"station_id"`
	StationName  string `json:"station_name"`
	Address      string `json:"address"`
	Location     string `json:"location"`
	TimeTag      string `json:"time_tag"`
	QueryTime    string `json:"query_time"`
	RegularPrice Price  `json:"regular_price"`
	PremiumPrice Price  `json:"premium_price"`
}

// TimedObservation is an observation whose query time parsed successfully.
type TimedObservation struct {
	Observation

	// Time is the parsed query time
	Time time.Time
	// Date is Time truncated to the calendar day
	Date time.Time
	// Tag is the normalized (lowercase, trimmed) time tag
	Tag string
}
