package models

import (
	"math"
	"time"
)

// Track is the columnar representation of a parsed recording. Every column
// has the same length; optional sensor columns use NaN for samples where the
// sensor reported nothing. Raw columns are never mutated after parsing;
// derived values live in their own batches.
type Track struct {
	Time      []time.Time
	Latitude  []float64
	Longitude []float64
	Elevation []float64
	HeartRate []float64 // bpm, NaN when absent
	Cadence   []float64 // per-foot steps/min as reported, NaN when absent
	Power     []float64 // watts, NaN when absent
}

// Len returns the number of samples in the track.
func (t *Track) Len() int {
	return len(t.Time)
}

// HasHeartRate reports whether any sample carries a heart-rate reading.
func (t *Track) HasHeartRate() bool {
	return anyPresent(t.HeartRate)
}

// HasCadence reports whether any sample carries a cadence reading.
func (t *Track) HasCadence() bool {
	return anyPresent(t.Cadence)
}

func anyPresent(col []float64) bool {
	for _, v := range col {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}
