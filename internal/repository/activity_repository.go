package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/database"
	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ActivityRepository handles database operations for activities.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, file_id, activity_type, category, date, title,
	distance_km, duration_seconds, elevation_gain, calories,
	avg_speed_kmh, avg_power, avg_heart_rate,
	avg_pace, fastest_pace, slowest_pace, pause,
	avg_steps, total_steps, comment, created_at, updated_at`

// Insert stores a computed activity together with all its segments in one
// transaction: either everything lands or nothing does.
func (r *ActivityRepository) Insert(activity *models.Activity, segments []models.Segment) (int64, error) {
	var id int64
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`INSERT INTO activities
			(file_id, activity_type, category, date, title,
			 distance_km, duration_seconds, elevation_gain, calories,
			 avg_speed_kmh, avg_power, avg_heart_rate,
			 avg_pace, fastest_pace, slowest_pace, pause,
			 avg_steps, total_steps, comment)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			nullString(activity.FileID), activity.ActivityType, string(activity.Category),
			activity.Date.Unix(), activity.Title,
			activity.DistanceKm, activity.DurationSeconds, activity.ElevationGain, activity.Calories,
			activity.AvgSpeedKmh, activity.AvgPower, activity.AvgHeartRate,
			activity.AvgPace, activity.FastestPace, activity.SlowestPace, activity.Pause,
			activity.AvgSteps, activity.TotalSteps, activity.Comment,
		)
		if err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read activity id: %w", err)
		}
		return insertSegmentsTx(tx, id, segments)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites an activity and replaces all its segments in one
// transaction.
func (r *ActivityRepository) Update(id int64, activity *models.Activity, segments []models.Segment) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE activities SET
			file_id = ?, activity_type = ?, category = ?, date = ?, title = ?,
			distance_km = ?, duration_seconds = ?, elevation_gain = ?, calories = ?,
			avg_speed_kmh = ?, avg_power = ?, avg_heart_rate = ?,
			avg_pace = ?, fastest_pace = ?, slowest_pace = ?, pause = ?,
			avg_steps = ?, total_steps = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			nullString(activity.FileID), activity.ActivityType, string(activity.Category),
			activity.Date.Unix(), activity.Title,
			activity.DistanceKm, activity.DurationSeconds, activity.ElevationGain, activity.Calories,
			activity.AvgSpeedKmh, activity.AvgPower, activity.AvgHeartRate,
			activity.AvgPace, activity.FastestPace, activity.SlowestPace, activity.Pause,
			activity.AvgSteps, activity.TotalSteps, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update activity: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		if _, err := tx.Exec("DELETE FROM activity_segments WHERE activity_id = ?", id); err != nil {
			return fmt.Errorf("failed to clear segments: %w", err)
		}
		return insertSegmentsTx(tx, id, segments)
	})
}

// UpdateEditable applies the post-import editable fields (title, comment)
// without touching computed values.
func (r *ActivityRepository) UpdateEditable(id int64, update models.ActivityUpdate) error {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	var args []interface{}
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Comment != nil {
		sets = append(sets, "comment = ?")
		args = append(args, *update.Comment)
	}
	args = append(args, id)

	res, err := r.db.Exec("UPDATE activities SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a single activity by ID.
func (r *ActivityRepository) GetByID(id int64) (*models.Activity, error) {
	row := r.db.QueryRow("SELECT "+activityColumns+" FROM activities WHERE id = ?", id)
	return scanActivity(row)
}

// GetByFileID retrieves an activity by its import file identifier. Used for
// duplicate-import detection.
func (r *ActivityRepository) GetByFileID(fileID string) (*models.Activity, error) {
	row := r.db.QueryRow("SELECT "+activityColumns+" FROM activities WHERE file_id = ?", fileID)
	return scanActivity(row)
}

// List retrieves activities with filtering and pagination, newest first.
func (r *ActivityRepository) List(filter models.ActivityFilter) ([]models.Activity, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.StartDate > 0 {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate > 0 {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate)
	}
	if filter.MinDistance > 0 {
		conditions = append(conditions, "distance_km >= ?")
		args = append(args, filter.MinDistance)
	}
	if filter.MaxDistance > 0 {
		conditions = append(conditions, "distance_km <= ?")
		args = append(args, filter.MaxDistance)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM activities"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	if filter.PageSize > 500 {
		filter.PageSize = 500
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + activityColumns + " FROM activities" + where +
		" ORDER BY date DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, err
		}
		activities = append(activities, *a)
	}
	return activities, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*models.Activity, error) {
	var a models.Activity
	var fileID sql.NullString
	var category string
	var date int64
	err := row.Scan(
		&a.ID, &fileID, &a.ActivityType, &category, &date, &a.Title,
		&a.DistanceKm, &a.DurationSeconds, &a.ElevationGain, &a.Calories,
		&a.AvgSpeedKmh, &a.AvgPower, &a.AvgHeartRate,
		&a.AvgPace, &a.FastestPace, &a.SlowestPace, &a.Pause,
		&a.AvgSteps, &a.TotalSteps, &a.Comment, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}
	a.FileID = fileID.String
	a.Category = models.ActivityType(category)
	a.Date = time.Unix(date, 0).UTC()
	return &a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
