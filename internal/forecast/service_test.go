package forecast

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/d-orlov/tempgrid/internal/cache"
	"github.com/d-orlov/tempgrid/internal/geo"
	"github.com/d-orlov/tempgrid/internal/series"
)

// stubFetcher serves canned samples and counts calls.
type stubFetcher struct {
	samples []series.Sample
	err     error
	calls   int
}

func (f *stubFetcher) Fetch(ctx context.Context, coord geo.Coordinate) ([]series.Sample, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.samples, nil
}

func forecastSamples() []series.Sample {
	start := int64(1659722400)
	samples := make([]series.Sample, 0, 9)
	for i := int64(0); i <= 8; i++ {
		samples = append(samples, series.Sample{
			Timestamp: start + i*3*series.Hour,
			Value:     290.18 + float64(i),
		})
	}
	return samples
}

func TestCachedServiceMatchesDirectService(t *testing.T) {
	coord := geo.Coordinate{Lat: 47.36, Lon: -122.19}
	start := int64(1659722400)
	end := start + 25*series.Hour

	directFetcher := &stubFetcher{samples: forecastSamples()}
	cachedFetcher := &stubFetcher{samples: forecastSamples()}

	direct := NewDirectService(directFetcher)
	cached := NewCachedService(cachedFetcher, cache.New(4))

	for i := 0; i < 3; i++ {
		want, err := direct.Query(context.Background(), coord, start, end)
		if err != nil {
			t.Fatalf("direct query failed: %v", err)
		}
		got, err := cached.Query(context.Background(), coord, start, end)
		if err != nil {
			t.Fatalf("cached query failed: %v", err)
		}
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("query %d: cached output differs from direct output", i)
		}
	}

	// The outputs match; only the fetch counts differ.
	if directFetcher.calls != 3 {
		t.Fatalf("direct fetcher called %d times; want 3", directFetcher.calls)
	}
	if cachedFetcher.calls != 1 {
		t.Fatalf("cached fetcher called %d times; want 1", cachedFetcher.calls)
	}
}

func TestQueryPropagatesFetchError(t *testing.T) {
	coord := geo.Coordinate{Lat: 0, Lon: 0}
	wantErr := errors.New("fetch failed")

	direct := NewDirectService(&stubFetcher{err: wantErr})
	if _, err := direct.Query(context.Background(), coord, 0, 3600); !errors.Is(err, wantErr) {
		t.Fatalf("direct: got error %v; want %v", err, wantErr)
	}

	cached := NewCachedService(&stubFetcher{err: wantErr}, cache.New(4))
	if _, err := cached.Query(context.Background(), coord, 0, 3600); !errors.Is(err, wantErr) {
		t.Fatalf("cached: got error %v; want %v", err, wantErr)
	}
}

func TestEmptyFetchYieldsEmptyOutput(t *testing.T) {
	coord := geo.Coordinate{Lat: 1, Lon: 2}

	direct := NewDirectService(&stubFetcher{})
	got, err := direct.Query(context.Background(), coord, 0, 3600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d values from an empty series; want 0", len(got))
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	coord := geo.Coordinate{Lat: 47.36, Lon: -122.19}
	fetcher := &stubFetcher{samples: forecastSamples()}
	svc := NewCachedService(fetcher, cache.New(8))

	if _, err := svc.Query(context.Background(), coord, 1659722400, 1659722400+3600); err != nil {
		t.Fatalf("query failed: %v", err)
	}

	length, capacity := svc.CacheStats()
	if length != 1 || capacity != 8 {
		t.Fatalf("CacheStats() = %d, %d; want 1, 8", length, capacity)
	}

	svc.ClearCache()
	if length, _ = svc.CacheStats(); length != 0 {
		t.Fatalf("len = %d after clear; want 0", length)
	}
}
