// Package stats provides the small set of series statistics the pipeline
// needs. Absent samples are NaN and are skipped, the way the sensor columns
// represent missing data.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the mean of the non-NaN values, or NaN if none remain.
func Mean(values []float64) float64 {
	kept := dropNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	return stat.Mean(kept, nil)
}

// Sum returns the sum of the non-NaN values. An all-NaN series sums to 0.
func Sum(values []float64) float64 {
	return floats.Sum(dropNaN(values))
}

// Quantile returns the nearest-rank (empirical) q-quantile (0..1) of the
// non-NaN values, or NaN if none remain. Nearest rank suppresses
// single-sample outliers without interpolating values that never occurred.
func Quantile(values []float64, q float64) float64 {
	kept := dropNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	sort.Float64s(kept)
	return stat.Quantile(q, stat.Empirical, kept, nil)
}

// RollingMean returns the trailing-window mean of the series. Each output
// element averages the non-NaN values of the window ending at it; a window
// with no valid values yields NaN.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = Mean(values[lo : i+1])
	}
	return out
}

// Interpolate returns a copy of the series with interior NaN runs replaced by
// linear interpolation between their valid neighbors. Trailing NaNs take the
// last valid value; leading NaNs are left as-is since there is nothing to
// anchor them to.
func Interpolate(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	lastValid := -1
	for i := 0; i < len(out); i++ {
		if math.IsNaN(out[i]) {
			continue
		}
		if lastValid >= 0 && i-lastValid > 1 {
			step := (out[i] - out[lastValid]) / float64(i-lastValid)
			for j := lastValid + 1; j < i; j++ {
				out[j] = out[lastValid] + step*float64(j-lastValid)
			}
		}
		lastValid = i
	}
	if lastValid >= 0 {
		for j := lastValid + 1; j < len(out); j++ {
			out[j] = out[lastValid]
		}
	}
	return out
}

func dropNaN(values []float64) []float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept
}
