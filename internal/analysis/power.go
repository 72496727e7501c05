package analysis

import (
	"math"

	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// joulesPerKcal converts watt-seconds into kilocalories.
const joulesPerKcal = 4184.0

// EstimatePower returns the power column for a track: measured values where
// the device reported them, physics-model estimates everywhere else.
// Measured power is never overwritten. Samples with unknown speed keep an
// unknown power.
func EstimatePower(track *models.Track, k *Kinematics, at models.ActivityType, tuning config.Tuning) []float64 {
	power := make([]float64, track.Len())
	for i := range power {
		if !math.IsNaN(track.Power[i]) {
			power[i] = track.Power[i]
			continue
		}
		v := k.Speed[i]
		if math.IsNaN(v) {
			power[i] = math.NaN()
			continue
		}
		power[i] = modelPower(v, at, tuning)
	}
	return power
}

func modelPower(v float64, at models.ActivityType, tuning config.Tuning) float64 {
	switch at {
	case models.TypeCycle:
		return ridePower(v, tuning.Cycling, tuning.Gravity)
	case models.TypeRun:
		return footPower(v, tuning.Running, tuning.Gravity)
	case models.TypeWalk:
		return footPower(v, tuning.Walking, tuning.Gravity)
	}
	return 0
}

// ridePower models cycling power as rolling resistance plus aerodynamic
// drag: P = Crr·m·g·v + ½·ρ·CdA·(v+w)³.
func ridePower(v float64, p config.CyclingPhysics, g float64) float64 {
	totalMass := p.RiderWeight + p.BikeWeight
	pRoll := p.RollingResistance * totalMass * g * v
	pAero := 0.5 * p.AirDensity * p.DragArea * math.Pow(v+p.WindSpeed, 3)
	return math.Max(0, pRoll+pAero)
}

// footPower models running/walking power as P = Cs·m·g·v.
func footPower(v float64, p config.FootPhysics, g float64) float64 {
	return math.Max(0, p.ShoeResistance*p.Weight*g*v)
}

// EstimateCalories derives the per-sample calorie column from power and time
// deltas: kcal = P·Δt / (efficiency·4184). Samples with unknown power or
// time delta contribute zero rather than being skipped, which deliberately
// under-estimates totals when sensor data is sparse. Values are floored at
// zero.
func EstimateCalories(power, timeDiff []float64, at models.ActivityType, tuning config.Tuning) []float64 {
	efficiency := tuning.MetabolicEfficiency(at)
	cal := make([]float64, len(power))
	for i := range cal {
		if math.IsNaN(power[i]) || math.IsNaN(timeDiff[i]) {
			continue
		}
		cal[i] = math.Max(0, power[i]*timeDiff[i]/(efficiency*joulesPerKcal))
	}
	return cal
}
