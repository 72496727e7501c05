// Package analysis computes the derived per-sample metrics and aggregates of
// one activity: time and distance deltas, speed, pace, power, calories,
// pauses, steps, distance segments and best-segment windows. Each stage
// returns a new batch derived from the previous one; raw track columns are
// never mutated.
package analysis

import (
	"math"

	"github.com/runningmate/runningmate-backend-go/internal/models"
	"github.com/runningmate/runningmate-backend-go/internal/spatial"
	"github.com/runningmate/runningmate-backend-go/internal/stats"
)

// minPerKmFactor converts seconds-per-meter into minutes-per-kilometer.
const minPerKmFactor = 16.6667

// deviceRoundingWindow smooths time deltas when a device rounds timestamps
// to whole seconds across most of the stream.
const deviceRoundingWindow = 5

// Kinematics is the per-sample batch derived from the raw track: time and
// distance deltas, instantaneous speed and cumulative planar distance. All
// columns have track length; index 0 carries NaN deltas by construction
// except DistDiff, which starts at 0.
type Kinematics struct {
	TimeDiff      []float64 // seconds since previous sample
	DistDiff      []float64 // geodesic meters from previous sample
	Speed         []float64 // m/s
	CumDistanceKm []float64 // planar-projected cumulative distance
}

// ComputeKinematics derives the kinematic columns for a track. Zero distance
// deltas are replaced with a linear interpolation of their neighbors so the
// speed division stays defined; when at least 80% of time deltas are exactly
// one second a 5-sample rolling mean replaces them to counteract
// device-rounding artifacts.
func ComputeKinematics(track *models.Track) *Kinematics {
	n := track.Len()
	k := &Kinematics{
		TimeDiff:      make([]float64, n),
		Speed:         make([]float64, n),
		CumDistanceKm: make([]float64, n),
	}
	if n == 0 {
		k.DistDiff = []float64{}
		return k
	}

	k.TimeDiff[0] = math.NaN()
	exactOnes := 0
	for i := 1; i < n; i++ {
		k.TimeDiff[i] = track.Time[i].Sub(track.Time[i-1]).Seconds()
		if k.TimeDiff[i] == 1.0 {
			exactOnes++
		}
	}
	if float64(exactOnes) > float64(n)*0.8 {
		k.TimeDiff = stats.RollingMean(k.TimeDiff, deviceRoundingWindow)
	}

	k.DistDiff = spatial.PairwiseDistances(track.Latitude, track.Longitude)
	for i := 1; i < n; i++ {
		if k.DistDiff[i] == 0 {
			k.DistDiff[i] = math.NaN()
		}
	}
	k.DistDiff = stats.Interpolate(k.DistDiff)

	for i := 0; i < n; i++ {
		k.Speed[i] = k.DistDiff[i] / k.TimeDiff[i]
	}

	k.computeCumulativeDistance(track)
	return k
}

// computeCumulativeDistance accumulates Euclidean deltas in a planar
// projection whose zone is picked from the track's mean position.
func (k *Kinematics) computeCumulativeDistance(track *models.Track) {
	n := track.Len()
	if n == 0 {
		return
	}

	proj := spatial.NewUTMProjector(stats.Mean(track.Latitude), stats.Mean(track.Longitude))
	xs, ys := proj.ProjectAll(track.Latitude, track.Longitude)

	total := 0.0
	for i := 1; i < n; i++ {
		total += math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1]) / 1000
		k.CumDistanceKm[i] = total
	}
}

// TotalDistanceKm returns the cumulative distance at the last sample, 0 for
// an empty track.
func (k *Kinematics) TotalDistanceKm() float64 {
	if len(k.CumDistanceKm) == 0 {
		return 0
	}
	return k.CumDistanceKm[len(k.CumDistanceKm)-1]
}
