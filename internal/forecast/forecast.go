// Package forecast composes fetching, caching and resampling into the two
// temperature query services.
package forecast

import (
	"context"

	"github.com/d-orlov/tempgrid/internal/geo"
	"github.com/d-orlov/tempgrid/internal/series"
)

// Fetcher abstracts the remote forecast source (e.g. OpenWeatherMap).
// Implementations return an error only for genuine fetch failures (network,
// unparseable payload); an empty sample list is a valid result.
type Fetcher interface {
	Fetch(ctx context.Context, coord geo.Coordinate) ([]series.Sample, error)
}
