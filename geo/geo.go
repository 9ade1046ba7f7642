// Package geo turns free-text place names into map coordinates.
package geo

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/saulfrancisco-ruizacevedo/go-tourmarket/models"
)

// DefaultCoordinate is shown when a location cannot be geocoded.
var DefaultCoordinate = models.Coordinate{Latitude: 41.2867, Longitude: 36.33}

// Geocoder forward-geocodes an address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinate, error)
}

// Locate geocodes address, falling back to DefaultCoordinate. Failures are
// logged and never returned.
func Locate(ctx context.Context, g Geocoder, address string, logger *log.Logger) models.Coordinate {
	c, err := g.Geocode(ctx, address)
	if err != nil {
		if logger == nil {
			logger = log.Default()
		}
		logger.Printf("geo: geocoding %q failed: %v", address, err)
		return DefaultCoordinate
	}
	return c
}

// StaticGeocoder answers from a fixed table of place names, case-insensitively.
type StaticGeocoder map[string]models.Coordinate

// Geocode looks address up in the table.
func (s StaticGeocoder) Geocode(_ context.Context, address string) (models.Coordinate, error) {
	if c, ok := s[strings.ToLower(strings.TrimSpace(address))]; ok {
		return c, nil
	}
	return models.Coordinate{}, fmt.Errorf("no result for %q", address)
}
