package analysis

import (
	"math"
	"testing"
)

func TestComputeSteps(t *testing.T) {
	nan := math.NaN()

	// 80 per-foot cadence over three one-minute samples, one without a
	// time delta.
	cadence := []float64{80, 80, 80}
	timeDiff := []float64{nan, 60, 60}

	st := ComputeSteps(cadence, timeDiff)

	if st.AvgSPM != 160 {
		t.Errorf("AvgSPM = %v, want 160 (doubled)", st.AvgSPM)
	}
	// Two integrable samples: 160 steps/min * 1 min each.
	if math.Abs(st.TotalSteps-320) > 1e-9 {
		t.Errorf("TotalSteps = %v, want 320", st.TotalSteps)
	}
}

func TestComputeStepsSparseCadence(t *testing.T) {
	nan := math.NaN()
	st := ComputeSteps([]float64{nan, 90, nan}, []float64{nan, 60, 60})

	if st.AvgSPM != 180 {
		t.Errorf("AvgSPM = %v, want 180 from the single sample", st.AvgSPM)
	}
	if math.Abs(st.TotalSteps-180) > 1e-9 {
		t.Errorf("TotalSteps = %v, want 180", st.TotalSteps)
	}
}

func TestComputeStepsNoCadence(t *testing.T) {
	nan := math.NaN()
	st := ComputeSteps([]float64{nan, nan}, []float64{nan, 60})

	if !math.IsNaN(st.AvgSPM) || !math.IsNaN(st.TotalSteps) {
		t.Errorf("got %+v, want NaN aggregates without cadence data", st)
	}
}
