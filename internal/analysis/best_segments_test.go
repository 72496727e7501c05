package analysis

import (
	"testing"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/models"
)

func kmSegments(paces []float64) []models.Segment {
	start := time.Date(2024, 5, 5, 9, 0, 0, 0, time.UTC)
	segments := make([]models.Segment, len(paces))
	for i := range paces {
		p := paces[i]
		segments[i] = models.Segment{
			Number:     i,
			StartTime:  start.Add(time.Duration(i) * 6 * time.Minute),
			EndTime:    start.Add(time.Duration(i+1) * 6 * time.Minute),
			DistanceKm: 1.0,
			AvgPace:    &p,
		}
	}
	return segments
}

func TestFindBestSegmentsPicksFastestWindow(t *testing.T) {
	segments := kmSegments([]float64{6, 5, 4, 5, 6})

	best := FindBestSegments(segments, []float64{1, 2})
	if len(best) != 2 {
		t.Fatalf("got %d entries, want 2", len(best))
	}

	if best[0].DistanceKm != 1 || best[0].AvgPace != 4 {
		t.Errorf("1 km best = %+v, want pace 4", best[0])
	}
	if best[0].StartTime != segments[2].StartTime {
		t.Errorf("1 km best starts at %v, want segment 2", best[0].StartTime)
	}

	// Two-segment windows average 5.5, 4.5, 4.5, 5.5; the first 4.5
	// window wins and ties do not displace it.
	if best[1].DistanceKm != 2 || best[1].AvgPace != 4.5 {
		t.Errorf("2 km best = %+v, want pace 4.5", best[1])
	}
	if best[1].StartTime != segments[1].StartTime {
		t.Errorf("2 km best starts at %v, want segment 1", best[1].StartTime)
	}
}

func TestFindBestSegmentsUnreachedDistance(t *testing.T) {
	segments := kmSegments([]float64{5, 5, 5})

	best := FindBestSegments(segments, []float64{5, 10})
	if len(best) != 0 {
		t.Errorf("got %d entries for unreachable targets, want 0", len(best))
	}
}

func TestFindBestSegmentsSkipsPacelessWindows(t *testing.T) {
	segments := kmSegments([]float64{5, 5})
	segments[0].AvgPace = nil
	segments[1].AvgPace = nil

	best := FindBestSegments(segments, []float64{1})
	if len(best) != 0 {
		t.Errorf("got %d entries with no pace data, want 0", len(best))
	}
}

func TestFindBestSegmentsPartialTailCounts(t *testing.T) {
	// 0.5 km tail lets a 1.5 km window reach the 1 km target later.
	fast := 4.0
	segments := kmSegments([]float64{6, 6})
	tail := models.Segment{
		Number:     2,
		StartTime:  segments[1].EndTime,
		EndTime:    segments[1].EndTime.Add(2 * time.Minute),
		DistanceKm: 0.5,
		AvgPace:    &fast,
	}
	segments = append(segments, tail)

	best := FindBestSegments(segments, []float64{1})
	if len(best) != 1 {
		t.Fatalf("got %d entries, want 1", len(best))
	}
	// Single full segments still dominate: each 1 km window averages 6,
	// while the window starting at the tail never reaches 1 km.
	if best[0].AvgPace != 6 {
		t.Errorf("best pace = %v, want 6", best[0].AvgPace)
	}
}
