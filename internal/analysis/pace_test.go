package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/config"
)

func TestComputePace(t *testing.T) {
	band := config.DefaultTuning().PaceBand("Running")

	// 150 m per 60 s is 6.67 min/km, inside the running band.
	track := trackAlongMeridian(3, 0.00135, time.Minute)
	k := ComputeKinematics(track)

	pace, stats := ComputePace(k, band)

	if !math.IsNaN(pace[0]) {
		t.Errorf("pace[0] = %v, want NaN", pace[0])
	}
	for i := 1; i < 3; i++ {
		if math.Abs(pace[i]-6.67) > 0.05 {
			t.Errorf("pace[%d] = %v, want ~6.67", i, pace[i])
		}
	}
	if math.Abs(stats.Avg-6.67) > 0.05 {
		t.Errorf("Avg = %v, want ~6.67", stats.Avg)
	}
	if math.Abs(stats.Fastest-stats.Slowest) > 0.05 {
		t.Errorf("Fastest %v and Slowest %v should agree on a constant track",
			stats.Fastest, stats.Slowest)
	}
}

func TestComputePaceBandFilter(t *testing.T) {
	band := config.PaceBand{Min: 3, Max: 12, MinDistMeters: 0.5}

	nan := math.NaN()
	k := &Kinematics{
		// Pace values: ~1.7 (too fast), 6.7 (ok), 33 (too slow), below
		// min distance, unknown.
		TimeDiff: []float64{10, 60, 120, 1, nan},
		DistDiff: []float64{100, 150, 60, 0.4, 100},
	}

	pace, stats := ComputePace(k, band)

	if !math.IsNaN(pace[0]) {
		t.Errorf("too-fast sample = %v, want NaN", pace[0])
	}
	if math.IsNaN(pace[1]) {
		t.Errorf("valid sample filtered out")
	}
	if !math.IsNaN(pace[2]) {
		t.Errorf("too-slow sample = %v, want NaN", pace[2])
	}
	if !math.IsNaN(pace[3]) {
		t.Errorf("below-min-distance sample = %v, want NaN", pace[3])
	}
	if !math.IsNaN(pace[4]) {
		t.Errorf("unknown-time sample = %v, want NaN", pace[4])
	}

	// Only one sample survives; every aggregate equals it.
	if math.Abs(stats.Avg-pace[1]) > 1e-9 || stats.Fastest != pace[1] || stats.Slowest != pace[1] {
		t.Errorf("aggregates %+v, want all equal to %v", stats, pace[1])
	}
}

func TestComputePaceNothingSurvives(t *testing.T) {
	band := config.PaceBand{Min: 3, Max: 12, MinDistMeters: 0.5}
	k := &Kinematics{
		TimeDiff: []float64{math.NaN(), 1},
		DistDiff: []float64{0, 100},
	}

	_, stats := ComputePace(k, band)
	if !math.IsNaN(stats.Avg) || !math.IsNaN(stats.Fastest) || !math.IsNaN(stats.Slowest) {
		t.Errorf("aggregates %+v, want all NaN", stats)
	}
}

func TestComputePaceIdempotent(t *testing.T) {
	band := config.DefaultTuning().PaceBand("Running")
	track := trackAlongMeridian(5, 0.00135, time.Minute)
	k := ComputeKinematics(track)

	first, firstStats := ComputePace(k, band)
	second, secondStats := ComputePace(k, band)

	for i := range first {
		bothNaN := math.IsNaN(first[i]) && math.IsNaN(second[i])
		if !bothNaN && first[i] != second[i] {
			t.Fatalf("pace[%d] differs across runs: %v vs %v", i, first[i], second[i])
		}
	}
	if firstStats.Avg != secondStats.Avg && !(math.IsNaN(firstStats.Avg) && math.IsNaN(secondStats.Avg)) {
		t.Errorf("Avg differs across runs")
	}
}
