// Package geo defines geographic coordinates and city name resolution.
package geo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
)

// ErrUnknownCity is returned when a city cannot be resolved to coordinates.
var ErrUnknownCity = errors.New("unknown city")

// Coordinate identifies a geographic location. It is comparable and serves
// as the cache key; two coordinates are equal iff both components compare
// equal exactly.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.2f,%.2f", c.Lat, c.Lon)
}

// cities is the built-in registry of locations the service has always known.
var cities = map[string]Coordinate{
	"seattle":   {Lat: 47.36, Lon: -122.19},
	"vancouver": {Lat: 45.62, Lon: -122.67},
}

// Resolver turns city names into coordinates. Known cities come from the
// built-in registry; anything else goes through the Google geocoding API
// when an API key is configured.
type Resolver struct {
	apiKey string
}

// NewResolver creates a Resolver. An empty geocoderAPIKey limits resolution
// to the built-in registry.
func NewResolver(geocoderAPIKey string) *Resolver {
	return &Resolver{apiKey: geocoderAPIKey}
}

// Resolve maps a city name to its coordinate. Registry lookups are
// case-insensitive.
func (r *Resolver) Resolve(city string) (Coordinate, error) {
	name := strings.ToLower(strings.TrimSpace(city))
	if coord, ok := cities[name]; ok {
		return coord, nil
	}

	if r.apiKey == "" {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrUnknownCity, city)
	}

	geocoder.ApiKey = r.apiKey
	loc, err := geocoder.Geocoding(geocoder.Address{City: city})
	if err != nil {
		return Coordinate{}, fmt.Errorf("geocoding %s: %w", city, err)
	}
	return Coordinate{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}
