package analysis

import "github.com/runningmate/runningmate-backend-go/internal/models"

// FindBestSegments returns, per canonical target distance, the fastest
// contiguous run of segments that first reaches it: for every starting
// segment, windows grow forward until the accumulated distance meets the
// target, the member paces are averaged, and the minimum average across all
// starts wins. Targets the activity never reaches yield no entry.
//
// The scan is O(n²) in segment count per target; activities hold tens of
// segments at most, so the brute force stays cheap.
func FindBestSegments(segments []models.Segment, targetDistancesKm []float64) []models.BestSegment {
	var best []models.BestSegment
	for _, target := range targetDistancesKm {
		if b, ok := bestWindow(segments, target); ok {
			best = append(best, b)
		}
	}
	return best
}

func bestWindow(segments []models.Segment, targetKm float64) (models.BestSegment, bool) {
	var result models.BestSegment
	found := false

	for start := 0; start < len(segments); start++ {
		totalDistance := 0.0
		paceSum := 0.0
		paceCount := 0

		for end := start; end < len(segments); end++ {
			seg := segments[end]
			totalDistance += seg.DistanceKm
			if seg.AvgPace != nil {
				paceSum += *seg.AvgPace
				paceCount++
			}

			if totalDistance < targetKm {
				continue
			}
			if paceCount > 0 {
				avgPace := paceSum / float64(paceCount)
				if !found || avgPace < result.AvgPace {
					found = true
					result = models.BestSegment{
						DistanceKm: targetKm,
						StartTime:  segments[start].StartTime,
						EndTime:    seg.EndTime,
						AvgPace:    avgPace,
					}
				}
			}
			// First window reaching the target ends this start index.
			break
		}
	}
	return result, found
}
