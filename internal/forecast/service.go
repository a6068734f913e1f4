package forecast

import (
	"context"
	"sync"

	"github.com/d-orlov/tempgrid/internal/cache"
	"github.com/d-orlov/tempgrid/internal/geo"
	"github.com/d-orlov/tempgrid/internal/series"
)

// DirectService answers range queries with one fetch per query and no
// caching.
type DirectService struct {
	fetcher Fetcher
}

// NewDirectService creates a DirectService.
func NewDirectService(fetcher Fetcher) *DirectService {
	return &DirectService{fetcher: fetcher}
}

// Query fetches the series for coord and resamples it over [start, end).
// start and end are unix seconds; start >= end yields an empty result.
func (s *DirectService) Query(ctx context.Context, coord geo.Coordinate, start, end int64) ([]float64, error) {
	samples, err := s.fetcher.Fetch(ctx, coord)
	if err != nil {
		return nil, err
	}
	return series.Resample(series.NewStore(samples), start, end), nil
}

// CachedService answers the same queries through a bounded LFU cache, so
// repeated queries for a coordinate fetch at most once while its entry stays
// cached. The mutex serializes cache access, which the cache itself does not
// do; handlers and the warming scheduler share one instance.
type CachedService struct {
	mu      sync.Mutex
	fetcher Fetcher
	cache   *cache.LFU
}

// NewCachedService creates a CachedService owning the given cache.
func NewCachedService(fetcher Fetcher, c *cache.LFU) *CachedService {
	return &CachedService{fetcher: fetcher, cache: c}
}

// Query resamples the cached (or freshly fetched) series for coord over
// [start, end).
func (s *CachedService) Query(ctx context.Context, coord geo.Coordinate, start, end int64) ([]float64, error) {
	s.mu.Lock()
	store, err := s.cache.GetOrFetch(coord, func() ([]series.Sample, error) {
		return s.fetcher.Fetch(ctx, coord)
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return series.Resample(store, start, end), nil
}

// ClearCache empties the cache.
func (s *CachedService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Clear()
}

// CacheStats reports the current entry count and the configured capacity.
func (s *CachedService) CacheStats() (length, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len(), s.cache.Capacity()
}
