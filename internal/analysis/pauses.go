package analysis

import "math"

// DetectPauses sums the time deltas exceeding the pause threshold and
// returns the total paused duration in minutes. A single linear scan;
// adjacent pause samples are not merged.
func DetectPauses(timeDiff []float64, thresholdSeconds float64) float64 {
	total := 0.0
	for _, td := range timeDiff {
		if !math.IsNaN(td) && td > thresholdSeconds {
			total += td
		}
	}
	return total / 60
}
