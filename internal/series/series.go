// Package series holds one fetched temperature series and resamples it onto
// a regular time grid.
package series

import "sort"

// Sample is a single (timestamp, value) point as returned by a forecast
// fetch. Timestamps are unix seconds, values kelvin.
type Sample struct {
	Timestamp int64
	Value     float64
}

// Store is a timestamp-ordered series answering nearest-sample lookups in
// O(log n). It is immutable after construction.
type Store struct {
	ts     []int64
	values []float64
}

// NewStore builds a store from raw samples. Samples need not arrive ordered;
// a later sample at an already-seen timestamp overwrites the earlier one.
func NewStore(samples []Sample) *Store {
	byTS := make(map[int64]float64, len(samples))
	for _, s := range samples {
		byTS[s.Timestamp] = s.Value
	}

	ts := make([]int64, 0, len(byTS))
	for t := range byTS {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })

	values := make([]float64, len(ts))
	for i, t := range ts {
		values[i] = byTS[t]
	}
	return &Store{ts: ts, values: values}
}

// Len returns the number of stored samples.
func (s *Store) Len() int { return len(s.ts) }

// Nearest returns the value of the sample whose timestamp is closest to t.
// On a distance tie the later sample wins. If t is past the last sample
// there is no value; before the first sample the first value is returned.
func (s *Store) Nearest(t int64) (float64, bool) {
	low := sort.Search(len(s.ts), func(i int) bool { return s.ts[i] >= t })
	if low == len(s.ts) {
		return 0, false
	}
	if low == 0 {
		return s.values[0], true
	}
	if t-s.ts[low-1] < s.ts[low]-t {
		return s.values[low-1], true
	}
	return s.values[low], true
}
