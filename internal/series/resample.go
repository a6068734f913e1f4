package series

// Time constants in seconds.
const (
	Minute      int64 = 60
	FiveMinutes int64 = 5 * 60
	Hour        int64 = 60 * 60
	TwoHours    int64 = 2 * Hour
	Day         int64 = 24 * Hour
)

// Step returns the grid step for a requested range d seconds long:
// one minute under two hours, five minutes under a day, one hour otherwise.
func Step(d int64) int64 {
	switch {
	case d < TwoHours:
		return Minute
	case d < Day:
		return FiveMinutes
	default:
		return Hour
	}
}

// Resample projects the store onto a regular grid over [start, end). Grid
// points with no resolvable sample are skipped, so the result can be shorter
// than the number of grid points. start >= end yields an empty result.
func Resample(store *Store, start, end int64) []float64 {
	if start >= end {
		return []float64{}
	}

	step := Step(end - start)
	out := make([]float64, 0, (end-start+step-1)/step)
	for i := start; i < end; i += step {
		if v, ok := store.Nearest(i); ok {
			out = append(out, v)
		}
	}
	return out
}
