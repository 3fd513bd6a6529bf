package domain

// Coordinates is a latitude/longitude pair decoded from the Location column.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StationKey identifies a station aggregate.
// Two rows belong to the same aggregate only when all four fields match.
type StationKey struct {
	StationID   string
	StationName string
	Coordinates
}

// StationAggregate holds the mean clipped prices of one station.
type StationAggregate struct {
	StationKey

	RegularPrice float64 `json:"regular_price"`
	PremiumPrice float64 `json:"premium_price"`
	// Observations is the number of rows averaged into this aggregate
	Observations int `json:"observations"`
}
