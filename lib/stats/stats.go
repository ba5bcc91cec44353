// Package stats summarizes how lock acquisitions were spread over the
// contending workers. The mutex makes no fairness promise, so this is the
// only way to see how uneven the hand-over between waiters actually was.
package stats

import (
	"math"
)

// Stats is a summary of a series of values
type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	MinMaxRatio  float64 `json:"min_max_ratio"`
}

// NewStats computes mean, population standard deviation, minimum and
// maximum of values. An empty series yields the zero Stats.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	lo, hi := values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mean := sum / float64(len(values))

	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}

	ratio := 1.0
	if hi > 0 {
		ratio = lo / hi
	}

	return Stats{
		StdDeviation: math.Sqrt(sumSquaredDiffs / float64(len(values))),
		Min:          lo,
		Max:          hi,
		Mean:         mean,
		MinMaxRatio:  ratio,
	}
}

// Fairness describes the spread of acquisitions over workers
type Fairness struct {
	Stats
	// Quality is 1 for a perfectly even spread and approaches 0 when a
	// few workers got (almost) all acquisitions.
	Quality float64 `json:"quality"`
}

// NewFairness computes the fairness of the given per-worker acquisition counts
func NewFairness(acquisitions []int64) Fairness {
	values := make([]float64, len(acquisitions))
	for i, n := range acquisitions {
		values[i] = float64(n)
	}
	s := NewStats(values)

	// coefficient of variation, capped at 1
	var cv float64
	if s.Mean > 0 {
		cv = math.Min(1.0, s.StdDeviation/s.Mean)
	}

	return Fairness{
		Stats:   s,
		Quality: (1.0-cv)*0.5 + s.MinMaxRatio*0.5,
	}
}
