package service

import (
	"fmt"

	"github.com/runningmate/runningmate-backend-go/internal/analysis"
	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/models"
	"github.com/runningmate/runningmate-backend-go/internal/repository"
)

// BestPerformanceService computes per-activity best segments over the
// canonical distances and maintains the all-time leaderboard.
type BestPerformanceService struct {
	perfRepo     *repository.BestPerformanceRepository
	activityRepo *repository.ActivityRepository
	segmentRepo  *repository.SegmentRepository
	tuning       config.Tuning
}

// NewBestPerformanceService creates a new best-performance service.
func NewBestPerformanceService(
	perfRepo *repository.BestPerformanceRepository,
	activityRepo *repository.ActivityRepository,
	segmentRepo *repository.SegmentRepository,
	tuning config.Tuning,
) *BestPerformanceService {
	return &BestPerformanceService{
		perfRepo:     perfRepo,
		activityRepo: activityRepo,
		segmentRepo:  segmentRepo,
		tuning:       tuning,
	}
}

// Record finds the activity's best segment per canonical distance and offers
// each to the leaderboard. Activity types without canonical distances are
// skipped.
func (s *BestPerformanceService) Record(activityID int64, at models.ActivityType, segments []models.Segment) error {
	distances := s.tuning.Distances[at]
	if len(distances) == 0 {
		return nil
	}

	for _, best := range analysis.FindBestSegments(segments, distances) {
		perf := models.BestPerformance{
			ActivityID:   activityID,
			ActivityType: at,
			DistanceKm:   best.DistanceKm,
			BestPace:     best.AvgPace,
			AchievedAt:   best.StartTime,
		}
		if err := s.perfRepo.Upsert(perf); err != nil {
			return fmt.Errorf("failed to record %.0f km performance: %w", best.DistanceKm, err)
		}
	}
	return nil
}

// BestForActivity recomputes the best segments of one stored activity from
// its persisted segments.
func (s *BestPerformanceService) BestForActivity(activityID int64) ([]models.BestSegment, error) {
	activity, err := s.activityRepo.GetByID(activityID)
	if err != nil {
		return nil, err
	}

	segments, err := s.segmentRepo.GetByActivityID(activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load segments: %w", err)
	}

	distances := s.tuning.Distances[activity.Category]
	return analysis.FindBestSegments(segments, distances), nil
}

// DistanceLeaderboard is the leaderboard of one canonical distance, up to
// three entries, fastest first.
type DistanceLeaderboard struct {
	DistanceKm float64                  `json:"distance_km"`
	Entries    []models.BestPerformance `json:"entries"`
}

// Overview returns the full leaderboard for an activity type, grouped by
// distance in ascending order.
func (s *BestPerformanceService) Overview(at models.ActivityType) ([]DistanceLeaderboard, error) {
	perfs, err := s.perfRepo.ListByType(at)
	if err != nil {
		return nil, err
	}

	// ListByType orders by distance then pace, so one pass groups them.
	var boards []DistanceLeaderboard
	for _, p := range perfs {
		if n := len(boards); n == 0 || boards[n-1].DistanceKm != p.DistanceKm {
			boards = append(boards, DistanceLeaderboard{DistanceKm: p.DistanceKm})
		}
		last := &boards[len(boards)-1]
		last.Entries = append(last.Entries, p)
	}
	return boards, nil
}
