package analysis

import (
	"math"

	"github.com/runningmate/runningmate-backend-go/internal/stats"
)

// StepStats holds the cadence aggregates of a run or walk. Values are NaN
// when the recording carried no cadence data.
type StepStats struct {
	AvgSPM     float64 // average steps per minute
	TotalSteps float64
}

// ComputeSteps normalizes per-foot cadence into total steps per minute
// (×2) and integrates it over time for the step total. Samples without
// cadence or time delta contribute nothing to the integral.
func ComputeSteps(cadence, timeDiff []float64) StepStats {
	spm := make([]float64, len(cadence))
	total := 0.0
	for i := range cadence {
		spm[i] = cadence[i] * 2
		if !math.IsNaN(spm[i]) && !math.IsNaN(timeDiff[i]) {
			total += spm[i] * timeDiff[i] / 60
		}
	}

	st := StepStats{AvgSPM: stats.Mean(spm), TotalSteps: total}
	if math.IsNaN(st.AvgSPM) {
		st.TotalSteps = math.NaN()
	}
	return st
}
