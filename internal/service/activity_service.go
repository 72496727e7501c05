package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/runningmate/runningmate-backend-go/internal/models"
	"github.com/runningmate/runningmate-backend-go/internal/repository"
)

// ActivityService handles read and edit operations on stored activities.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	segmentRepo  *repository.SegmentRepository
	weatherRepo  *repository.WeatherRepository
}

// NewActivityService creates a new activity service.
func NewActivityService(
	activityRepo *repository.ActivityRepository,
	segmentRepo *repository.SegmentRepository,
	weatherRepo *repository.WeatherRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		segmentRepo:  segmentRepo,
		weatherRepo:  weatherRepo,
	}
}

// List retrieves activities with filtering and pagination, newest first.
func (s *ActivityService) List(filter models.ActivityFilter) (*models.ActivityListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	if filter.PageSize > 500 {
		filter.PageSize = 500
	}

	activities, total, err := s.activityRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return &models.ActivityListResponse{
		Data:       activities,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// ActivityDetail is one activity with its optional weather snapshot.
type ActivityDetail struct {
	models.Activity
	Weather *models.Weather `json:"weather,omitempty"`
}

// Get retrieves one activity together with its weather snapshot when one
// was recorded.
func (s *ActivityService) Get(id int64) (*ActivityDetail, error) {
	activity, err := s.activityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	detail := &ActivityDetail{Activity: *activity}

	w, err := s.weatherRepo.GetByActivityID(id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	detail.Weather = w

	return detail, nil
}

// Segments retrieves the stored segments of one activity in order. The
// activity must exist.
func (s *ActivityService) Segments(id int64) ([]models.Segment, error) {
	if _, err := s.activityRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.segmentRepo.GetByActivityID(id)
}

// UpdateEditable applies a title/comment edit. Derived metrics are never
// touched by edits.
func (s *ActivityService) UpdateEditable(id int64, update models.ActivityUpdate) (*models.Activity, error) {
	if update.Title == nil && update.Comment == nil {
		return nil, fmt.Errorf("nothing to update")
	}
	if err := s.activityRepo.UpdateEditable(id, update); err != nil {
		return nil, err
	}
	return s.activityRepo.GetByID(id)
}
