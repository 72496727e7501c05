package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runningmate/runningmate-backend-go/internal/analysis"
	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/models"
	"github.com/runningmate/runningmate-backend-go/internal/repository"
	"github.com/runningmate/runningmate-backend-go/internal/stats"
	"github.com/runningmate/runningmate-backend-go/internal/tcx"
)

var (
	// ErrDuplicateImport reports that a file with the same file id was
	// already imported.
	ErrDuplicateImport = errors.New("activity already imported")

	// ErrNoTrackpoints reports a file that parsed but carried no usable
	// trackpoints.
	ErrNoTrackpoints = errors.New("no usable trackpoints")
)

// WeatherLookup is the weather client surface the importer needs.
type WeatherLookup interface {
	Lookup(ctx context.Context, lat, lon float64, date time.Time) (*models.Weather, error)
}

// ImportService runs the full import pipeline for one TCX file: parse,
// derive kinematics and pace, estimate power and calories, segment, assemble
// the computed activity and persist it together with its segments, weather
// snapshot and best-performance entries.
type ImportService struct {
	activityRepo *repository.ActivityRepository
	bestPerf     *BestPerformanceService
	weatherRepo  *repository.WeatherRepository
	weatherAPI   WeatherLookup
	tuning       config.Tuning
}

// NewImportService creates a new import service. weatherAPI may be nil to
// disable weather enrichment.
func NewImportService(
	activityRepo *repository.ActivityRepository,
	bestPerf *BestPerformanceService,
	weatherRepo *repository.WeatherRepository,
	weatherAPI WeatherLookup,
	tuning config.Tuning,
) *ImportService {
	return &ImportService{
		activityRepo: activityRepo,
		bestPerf:     bestPerf,
		weatherRepo:  weatherRepo,
		weatherAPI:   weatherAPI,
		tuning:       tuning,
	}
}

type weatherResult struct {
	snapshot *models.Weather
	err      error
}

// Import parses and processes one TCX file and persists the result. fileName
// is the uploaded file's name; its base name becomes the file id, or a
// random uuid when empty. A second import of the same file id fails with
// ErrDuplicateImport.
func (s *ImportService) Import(ctx context.Context, r io.Reader, fileName string) (*models.Activity, error) {
	track, sport, err := tcx.Parse(r)
	if err != nil {
		return nil, err
	}
	if track.Len() == 0 {
		return nil, ErrNoTrackpoints
	}

	fileID := fileIDFromName(fileName)
	if existing, err := s.activityRepo.GetByFileID(fileID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateImport, fileID)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate: %w", err)
	}

	category := models.MapActivityLabel(sport)

	k := analysis.ComputeKinematics(track)
	_, paceStats := analysis.ComputePace(k, s.tuning.PaceBand(category))
	power := analysis.EstimatePower(track, k, category, s.tuning)
	calories := analysis.EstimateCalories(power, k.TimeDiff, category, s.tuning)
	pauseMinutes := analysis.DetectPauses(k.TimeDiff, s.tuning.PauseThresholdSeconds)
	segments := analysis.BuildSegments(track, k, power, category, s.tuning.SegmentLength(category))

	activity := s.assembleActivity(track, k, category, sport, fileID, paceStats, power, calories, pauseMinutes)

	// Weather is fetched while the activity is persisted; a failed lookup
	// only costs the snapshot.
	weatherCh := s.dispatchWeather(ctx, segments)

	id, err := s.activityRepo.Insert(activity, segments)
	if err != nil {
		return nil, fmt.Errorf("failed to persist activity: %w", err)
	}
	activity.ID = id

	if weatherCh != nil {
		res := <-weatherCh
		switch {
		case res.err != nil:
			log.Printf("weather lookup failed for activity %d: %v", id, res.err)
		case res.snapshot != nil:
			res.snapshot.ActivityID = id
			if err := s.weatherRepo.Upsert(*res.snapshot); err != nil {
				log.Printf("failed to store weather for activity %d: %v", id, err)
			}
		}
	}

	if err := s.bestPerf.Record(id, category, segments); err != nil {
		log.Printf("failed to update best performances for activity %d: %v", id, err)
	}

	return activity, nil
}

func (s *ImportService) assembleActivity(
	track *models.Track,
	k *analysis.Kinematics,
	category models.ActivityType,
	sport, fileID string,
	paceStats analysis.PaceStats,
	power, calories []float64,
	pauseMinutes float64,
) *models.Activity {
	start := track.Time[0]
	end := track.Time[track.Len()-1]
	duration := end.Sub(start).Seconds()
	distance := k.TotalDistanceKm()

	avgSpeed := 0.0
	if duration > 0 {
		avgSpeed = distance / (duration / 3600)
	}

	activity := &models.Activity{
		FileID:          fileID,
		ActivityType:    sport,
		Category:        category,
		Date:            start,
		Title:           analysis.GenerateTitle(category, start),
		DistanceKm:      math.Round(distance*100) / 100,
		DurationSeconds: duration,
		ElevationGain:   int(math.Round(elevationGain(track.Elevation))),
		Calories:        int(math.Round(stats.Sum(calories))),
		AvgSpeedKmh:     math.Round(avgSpeed*100) / 100,
		AvgPace:         analysis.FormatPace(paceStats.Avg),
		FastestPace:     analysis.FormatPace(paceStats.Fastest),
		SlowestPace:     analysis.FormatPace(paceStats.Slowest),
		Pause:           analysis.FormatPace(pauseMinutes),
	}

	if avg := stats.Mean(power); !math.IsNaN(avg) {
		rounded := math.Round(avg)
		activity.AvgPower = &rounded
	}
	if track.HasHeartRate() {
		if avg := stats.Mean(track.HeartRate); !math.IsNaN(avg) {
			hr := int(math.Round(avg))
			activity.AvgHeartRate = &hr
		}
	}

	if category == models.TypeRun || category == models.TypeWalk {
		steps := analysis.ComputeSteps(track.Cadence, k.TimeDiff)
		if !math.IsNaN(steps.AvgSPM) {
			avg := int(math.Round(steps.AvgSPM))
			activity.AvgSteps = &avg
		}
		if !math.IsNaN(steps.TotalSteps) {
			total := int(steps.TotalSteps)
			activity.TotalSteps = &total
		}
	}

	return activity
}

// dispatchWeather starts the asynchronous weather lookup keyed by the middle
// segment's start location and date. Returns nil when enrichment is
// unavailable.
func (s *ImportService) dispatchWeather(ctx context.Context, segments []models.Segment) <-chan weatherResult {
	if s.weatherAPI == nil || s.weatherRepo == nil || len(segments) == 0 {
		return nil
	}

	mid := segments[len(segments)/2]
	ch := make(chan weatherResult, 1)
	go func() {
		w, err := s.weatherAPI.Lookup(ctx, mid.StartLat, mid.StartLon, mid.StartTime)
		ch <- weatherResult{snapshot: w, err: err}
	}()
	return ch
}

func fileIDFromName(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return uuid.NewString()
	}
	return base
}

// elevationGain sums the positive elevation deltas over the whole track.
func elevationGain(elevation []float64) float64 {
	var gain float64
	for i := 1; i < len(elevation); i++ {
		if math.IsNaN(elevation[i]) || math.IsNaN(elevation[i-1]) {
			continue
		}
		if d := elevation[i] - elevation[i-1]; d > 0 {
			gain += d
		}
	}
	return gain
}
