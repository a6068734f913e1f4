// Package cache implements a bounded least-frequently-used cache of
// temperature series keyed by coordinate.
package cache

import (
	"github.com/d-orlov/tempgrid/internal/geo"
	"github.com/d-orlov/tempgrid/internal/series"
)

// entry pairs a cached series with its access count.
type entry struct {
	store *series.Store
	freq  int
}

// LFU is a bounded coordinate -> series cache evicting the least frequently
// used entry first; ties are broken by evicting the coordinate that entered
// its frequency bucket earliest. Not safe for concurrent use; callers must
// serialize access.
type LFU struct {
	capacity int
	entries  map[geo.Coordinate]*entry

	// buckets holds, per access count, the coordinates at that count in
	// insertion order (oldest first). A coordinate lives in exactly one
	// bucket, the one matching its entry's freq.
	buckets map[int][]geo.Coordinate
}

// New returns an empty cache holding at most capacity series. Capacity is
// fixed for the cache lifetime. Capacity 0 disables caching entirely: every
// lookup fetches and nothing is stored.
func New(capacity int) *LFU {
	return &LFU{
		capacity: capacity,
		entries:  make(map[geo.Coordinate]*entry),
		buckets:  make(map[int][]geo.Coordinate),
	}
}

// GetOrFetch returns the cached series for coord, fetching and inserting on
// a miss. A hit bumps the coordinate's access count and returns the stored
// series unchanged. On a miss at capacity the least valuable entry is
// evicted before the fetch runs; if the fetch then fails the eviction is not
// rolled back and the cache is otherwise left unmodified.
func (c *LFU) GetOrFetch(coord geo.Coordinate, fetch func() ([]series.Sample, error)) (*series.Store, error) {
	if e, ok := c.entries[coord]; ok {
		c.removeFromBucket(e.freq, coord)
		e.freq++
		c.appendToBucket(e.freq, coord)
		return e.store, nil
	}

	if c.capacity == 0 {
		samples, err := fetch()
		if err != nil {
			return nil, err
		}
		return series.NewStore(samples), nil
	}

	if len(c.entries) >= c.capacity {
		c.evictOne()
	}

	samples, err := fetch()
	if err != nil {
		return nil, err
	}

	store := series.NewStore(samples)
	c.entries[coord] = &entry{store: store, freq: 1}
	c.appendToBucket(1, coord)
	return store, nil
}

// Clear drops every entry and bucket. Capacity is unchanged.
func (c *LFU) Clear() {
	c.entries = make(map[geo.Coordinate]*entry)
	c.buckets = make(map[int][]geo.Coordinate)
}

// Len returns the current number of cached coordinates.
func (c *LFU) Len() int { return len(c.entries) }

// Capacity returns the bound the cache was constructed with.
func (c *LFU) Capacity() int { return c.capacity }

// evictOne removes the oldest coordinate from the lowest populated frequency
// bucket. No-op on an empty cache.
func (c *LFU) evictOne() {
	if len(c.entries) == 0 {
		return
	}

	lowest := -1
	for f := range c.buckets {
		if lowest == -1 || f < lowest {
			lowest = f
		}
	}

	victim := c.buckets[lowest][0]
	c.removeFromBucket(lowest, victim)
	delete(c.entries, victim)
}

// removeFromBucket deletes coord from buckets[freq], dropping the bucket
// entirely once empty.
func (c *LFU) removeFromBucket(freq int, coord geo.Coordinate) {
	bucket := c.buckets[freq]
	for i, k := range bucket {
		if k == coord {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.buckets, freq)
		return
	}
	c.buckets[freq] = bucket
}

func (c *LFU) appendToBucket(freq int, coord geo.Coordinate) {
	c.buckets[freq] = append(c.buckets[freq], coord)
}
