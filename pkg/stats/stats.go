package stats

import (
	"math"
	"sort"
)

type Float interface {
	~float32 | ~float64
}

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Returns (mean, variance) of the given samples.
func MeanVar[T Float | Integer](samples []T) (float64, float64) {
	mean := Mean(samples)
	variance := Variance(samples, mean)
	return mean, variance
}

// Returns the mean of the given samples.
func Mean[T Float | Integer](samples []T) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += float64(v)
	}
	return sum / float64(len(samples))
}

// Returns the variance of the given samples.
func Variance[T Float | Integer](samples []T, mean float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		diff := float64(v) - mean
		sum += diff * diff
	}
	return sum / float64(len(samples))
}

// Returns the standard deviation of the given samples.
func Std[T Float | Integer](samples []T) float64 {
	mean := Mean(samples)
	return math.Sqrt(Variance(samples, mean))
}

// Returns the median of the given samples, or 0 for an empty slice.
// The input is not modified.
func Median[T Float | Integer](samples []T) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := make([]float64, len(samples))
	for i, v := range samples {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
