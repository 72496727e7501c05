package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// SegmentRepository handles database operations for activity segments.
type SegmentRepository struct {
	db *sql.DB
}

// NewSegmentRepository creates a new segment repository.
func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// GetByActivityID retrieves the segments of an activity ordered by their
// position within it.
func (r *SegmentRepository) GetByActivityID(activityID int64) ([]models.Segment, error) {
	rows, err := r.db.Query(`SELECT id, activity_id, segment_number,
		start_time, end_time, start_lat, start_lon,
		distance_km, elevation_gain,
		avg_heart_rate, avg_power, avg_speed, avg_pace, avg_cadence
		FROM activity_segments
		WHERE activity_id = ?
		ORDER BY segment_number ASC`, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		var s models.Segment
		var start, end int64
		err := rows.Scan(
			&s.ID, &s.ActivityID, &s.Number,
			&start, &end, &s.StartLat, &s.StartLon,
			&s.DistanceKm, &s.ElevationGain,
			&s.AvgHeartRate, &s.AvgPower, &s.AvgSpeed, &s.AvgPace, &s.AvgCadence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		s.StartTime = time.Unix(start, 0).UTC()
		s.EndTime = time.Unix(end, 0).UTC()
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

// insertSegmentsTx inserts an activity's segments inside the caller's
// transaction so the activity row and its children commit together.
func insertSegmentsTx(tx *sql.Tx, activityID int64, segments []models.Segment) error {
	stmt, err := tx.Prepare(`INSERT INTO activity_segments
		(activity_id, segment_number, start_time, end_time, start_lat, start_lon,
		 distance_km, elevation_gain, avg_heart_rate, avg_power, avg_speed, avg_pace, avg_cadence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare segment insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range segments {
		_, err := stmt.Exec(
			activityID, s.Number, s.StartTime.Unix(), s.EndTime.Unix(),
			s.StartLat, s.StartLon, s.DistanceKm, s.ElevationGain,
			s.AvgHeartRate, s.AvgPower, s.AvgSpeed, s.AvgPace, s.AvgCadence,
		)
		if err != nil {
			return fmt.Errorf("failed to insert segment %d: %w", s.Number, err)
		}
	}
	return nil
}
