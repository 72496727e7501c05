package analysis

import (
	"math"

	"github.com/runningmate/runningmate-backend-go/internal/models"
	"github.com/runningmate/runningmate-backend-go/internal/spatial"
	"github.com/runningmate/runningmate-backend-go/internal/stats"
)

// segmentAccumulator collects the samples of one distance window.
type segmentAccumulator struct {
	heartRate []float64
	power     []float64
	speed     []float64
	cadence   []float64

	started       bool
	startTime     int // index of first sample in window
	distanceKm    float64
	elevationGain float64
}

// BuildSegments partitions a track into consecutive windows of the given
// length (km), emitting one segment per full window plus a trailing partial
// one if distance remains. Per-window averages cover only the samples that
// carried the metric; cadence aggregation is suppressed for cycling.
// The distance and climb between two consecutive samples are credited to the
// window the later sample falls in, so window distances sum to the track
// total even across boundaries.
func BuildSegments(track *models.Track, k *Kinematics, power []float64, at models.ActivityType, segmentLengthKm float64) []models.Segment {
	n := track.Len()
	if n == 0 {
		return nil
	}

	var segments []models.Segment
	acc := segmentAccumulator{}
	accumulated := 0.0

	for i := 0; i < n; i++ {
		if !acc.started {
			acc.started = true
			acc.startTime = i
		}
		if i > 0 {
			delta := spatial.HaversineDistance(
				track.Latitude[i-1], track.Longitude[i-1],
				track.Latitude[i], track.Longitude[i],
			) / 1000
			accumulated += delta
			acc.distanceKm += delta

			if track.Elevation[i] > track.Elevation[i-1] {
				acc.elevationGain += track.Elevation[i] - track.Elevation[i-1]
			}
		}

		acc.collect(track, k, power, at, i)

		if accumulated >= segmentLengthKm {
			segments = append(segments, acc.emit(track, at, i, len(segments)))
			acc = segmentAccumulator{}
			accumulated = 0
		}
	}

	if acc.started && acc.distanceKm > 0 {
		segments = append(segments, acc.emit(track, at, n-1, len(segments)))
	}
	return segments
}

func (a *segmentAccumulator) collect(track *models.Track, k *Kinematics, power []float64, at models.ActivityType, i int) {
	if !math.IsNaN(track.HeartRate[i]) {
		a.heartRate = append(a.heartRate, track.HeartRate[i])
	}
	if !math.IsNaN(power[i]) {
		a.power = append(a.power, power[i])
	}
	if !math.IsNaN(k.Speed[i]) {
		a.speed = append(a.speed, k.Speed[i])
	}
	if at != models.TypeCycle && !math.IsNaN(track.Cadence[i]) {
		a.cadence = append(a.cadence, track.Cadence[i]*2)
	}
}

func (a *segmentAccumulator) emit(track *models.Track, at models.ActivityType, endIdx, number int) models.Segment {
	seg := models.Segment{
		Number:        number,
		StartTime:     track.Time[a.startTime],
		EndTime:       track.Time[endIdx],
		StartLat:      track.Latitude[a.startTime],
		StartLon:      track.Longitude[a.startTime],
		DistanceKm:    a.distanceKm,
		ElevationGain: a.elevationGain,
		AvgHeartRate:  average(a.heartRate),
		AvgPower:      average(a.power),
		AvgSpeed:      average(a.speed),
	}
	if seg.AvgSpeed != nil && *seg.AvgSpeed > 0 {
		pace := minPerKmFactor / *seg.AvgSpeed
		seg.AvgPace = &pace
	}
	if at != models.TypeCycle {
		seg.AvgCadence = average(a.cadence)
	}
	return seg
}

// average returns the mean of the collected values, nil when none were
// collected. A window without a metric reports it as absent, not zero.
func average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := stats.Mean(values)
	return &m
}
