package domain

import "fmt"

// Aggregate sums aligned series element-wise, treating nil as zero.
// Unlike a plain sum with nil as zero, a position stays nil when every series
// is nil there, so a point without data on any host still reads as missing.
func Aggregate(series [][]*float64) ([]*float64, error) {
	if len(series) == 0 {
		return nil, ErrNoEntities
	}

	size := len(series[0])
	for i, s := range series[1:] {
		if len(s) != size {
			return nil, fmt.Errorf("%w: series %d has %d values, expected %d", ErrMisalignedSeries, i+1, len(s), size)
		}
	}

	out := make([]*float64, size)
	for i := range out {
		var sum float64
		seen := false
		for _, s := range series {
			if s[i] == nil {
				continue
			}
			sum += *s[i]
			seen = true
		}
		if seen {
			out[i] = &sum
		}
	}
	return out, nil
}
