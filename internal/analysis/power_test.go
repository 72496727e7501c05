package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/models"
)

func TestEstimatePowerCycling(t *testing.T) {
	tuning := config.DefaultTuning()

	// At 10 m/s with the default coefficients: rolling 0.004*78*9.81*10
	// plus drag 0.5*1.225*0.27*1000, together just under 196 W.
	got := modelPower(10, models.TypeCycle, tuning)
	if math.Abs(got-196) > 1 {
		t.Errorf("cycling power at 10 m/s = %v, want ~196", got)
	}
}

func TestEstimatePowerFoot(t *testing.T) {
	tuning := config.DefaultTuning()

	// P = Cs*m*g*v = 0.02*70*9.81*3
	got := modelPower(3, models.TypeRun, tuning)
	if math.Abs(got-41.202) > 0.01 {
		t.Errorf("running power at 3 m/s = %v, want 41.202", got)
	}

	// Walking carries a higher shoe resistance.
	walk := modelPower(3, models.TypeWalk, tuning)
	if walk <= got {
		t.Errorf("walking power %v should exceed running power %v at equal speed", walk, got)
	}
}

func TestEstimatePowerUnknownType(t *testing.T) {
	if got := modelPower(3, models.TypeUnknown, config.DefaultTuning()); got != 0 {
		t.Errorf("unknown-type power = %v, want 0", got)
	}
}

func TestEstimatePowerKeepsMeasured(t *testing.T) {
	tuning := config.DefaultTuning()
	nan := math.NaN()

	track := trackAlongMeridian(3, 0.00135, time.Minute)
	track.Power = []float64{250, nan, nan}
	k := &Kinematics{Speed: []float64{3, 3, nan}}

	power := EstimatePower(track, k, models.TypeRun, tuning)

	if power[0] != 250 {
		t.Errorf("measured power overwritten: %v", power[0])
	}
	if math.Abs(power[1]-41.202) > 0.01 {
		t.Errorf("estimated power = %v, want 41.202", power[1])
	}
	if !math.IsNaN(power[2]) {
		t.Errorf("power with unknown speed = %v, want NaN", power[2])
	}
}

func TestEstimateCalories(t *testing.T) {
	tuning := config.DefaultTuning()
	nan := math.NaN()

	power := []float64{200, nan, 200, 200}
	timeDiff := []float64{60, 60, nan, 60}

	cal := EstimateCalories(power, timeDiff, models.TypeRun, tuning)

	// 200 W * 60 s / (0.20 * 4184 J/kcal)
	want := 200.0 * 60 / (0.20 * 4184)
	if math.Abs(cal[0]-want) > 1e-6 {
		t.Errorf("cal[0] = %v, want %v", cal[0], want)
	}
	if cal[1] != 0 || cal[2] != 0 {
		t.Errorf("unknown samples contribute %v, %v, want 0, 0", cal[1], cal[2])
	}

	// Cycling converts more efficiently, so fewer kilocalories per joule.
	rideCal := EstimateCalories(power, timeDiff, models.TypeCycle, tuning)
	if rideCal[0] >= cal[0] {
		t.Errorf("cycling calories %v should be below running %v", rideCal[0], cal[0])
	}
}

func TestEstimateCaloriesNeverNegative(t *testing.T) {
	cal := EstimateCalories([]float64{-50}, []float64{60}, models.TypeRun, config.DefaultTuning())
	if cal[0] != 0 {
		t.Errorf("negative power calories = %v, want 0", cal[0])
	}
}
