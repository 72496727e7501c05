package analysis

import (
	"math"

	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/stats"
)

// PaceStats aggregates the retained per-sample paces. All values are min/km;
// NaN when no sample survived the band filter. Fastest and slowest are the
// 5th and 95th nearest-rank percentiles rather than min/max so a single
// GPS-noise sample cannot claim the record.
type PaceStats struct {
	Avg     float64
	Fastest float64
	Slowest float64
}

// ComputePace converts per-sample speed into pace in min/km and filters it
// to the activity type's valid band. Values outside the band become NaN,
// never clamped. The filter is idempotent: NaN inputs stay NaN.
func ComputePace(k *Kinematics, band config.PaceBand) ([]float64, PaceStats) {
	pace := make([]float64, len(k.DistDiff))
	for i := range pace {
		pace[i] = math.NaN()

		dd := k.DistDiff[i]
		if math.IsNaN(dd) || dd <= band.MinDistMeters {
			continue
		}
		p := (k.TimeDiff[i] / dd) * minPerKmFactor
		if math.IsInf(p, 0) || p < band.Min || p > band.Max {
			continue
		}
		pace[i] = p
	}

	return pace, PaceStats{
		Avg:     stats.Mean(pace),
		Fastest: stats.Quantile(pace, 0.05),
		Slowest: stats.Quantile(pace, 0.95),
	}
}
