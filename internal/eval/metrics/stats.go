package metrics

import (
	"math"
	"sort"
)

// SafeMean returns the arithmetic mean, 0 for no values.
func SafeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// P95 returns the 95th percentile by the nearest-rank rule.
func P95(values []float64) float64 {
	return Percentile(values, 95)
}

// Percentile sorts a copy of values and picks index ceil(p/100*n)-1 clamped to [0, n-1].
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	idx = max(0, min(len(sorted)-1, idx))
	return sorted[idx]
}

func BoolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
