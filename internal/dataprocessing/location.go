package dataprocessing

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"

	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

// locationCell mirrors the mapping stored in the Location column, e.g.
// {'Latitude': 43.65, 'Longitude': -79.38}. The flow-mapping form is valid
// YAML, and so is the JSON form.
type locationCell struct {
	Latitude  *float64 `yaml:"Latitude"`
	Longitude *float64 `yaml:"Longitude"`
}

// ParseLocation decodes a Location cell into coordinates
func ParseLocation(cell string) (domain.Coordinates, error) {
	raw := strings.TrimSpace(cell)
	if raw == "" {
		return domain.Coordinates{}, apperrors.NewParsingError("empty location", nil)
	}

	var loc locationCell
	if err := yaml.Unmarshal([]byte(raw), &loc); err != nil {
		return domain.Coordinates{}, apperrors.NewParsingError("malformed location", err).WithContext("value", raw)
	}

	var missing []string
	if loc.Latitude == nil {
		missing = append(missing, "Latitude")
	}
	if loc.Longitude == nil {
		missing = append(missing, "Longitude")
	}
	if len(missing) > 0 {
		return domain.Coordinates{}, apperrors.NewParsingError(
			fmt.Sprintf("location missing %s", strings.Join(missing, " and ")), nil).
			WithContext("value", raw)
	}

	return domain.Coordinates{Latitude: *loc.Latitude, Longitude: *loc.Longitude}, nil
}
