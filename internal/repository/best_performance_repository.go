package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/database"
	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// leaderboardSize is the number of records kept per (activity type,
// distance) pair.
const leaderboardSize = 3

// BestPerformanceRepository maintains the all-time leaderboard of fastest
// paces per activity type and canonical distance.
type BestPerformanceRepository struct {
	db *sql.DB
}

// NewBestPerformanceRepository creates a new best-performance repository.
func NewBestPerformanceRepository(db *sql.DB) *BestPerformanceRepository {
	return &BestPerformanceRepository{db: db}
}

// Upsert offers a new result to the leaderboard for its (activity type,
// distance) key. With fewer than three records it is inserted; otherwise it
// replaces the current worst only when strictly faster. On an exact pace tie
// the incumbent record is kept, so insertion order stays deterministic.
func (r *BestPerformanceRepository) Upsert(p models.BestPerformance) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		rows, err := tx.Query(`SELECT id, best_pace FROM best_performances
			WHERE activity_type = ? AND distance_km = ?
			ORDER BY best_pace ASC, created_at ASC`,
			string(p.ActivityType), p.DistanceKm)
		if err != nil {
			return fmt.Errorf("failed to query leaderboard: %w", err)
		}

		type entry struct {
			id   int64
			pace float64
		}
		var entries []entry
		for rows.Next() {
			var e entry
			if err := rows.Scan(&e.id, &e.pace); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan leaderboard row: %w", err)
			}
			entries = append(entries, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if len(entries) >= leaderboardSize {
			worst := entries[len(entries)-1]
			if p.BestPace >= worst.pace {
				return nil
			}
			if _, err := tx.Exec("DELETE FROM best_performances WHERE id = ?", worst.id); err != nil {
				return fmt.Errorf("failed to evict leaderboard row: %w", err)
			}
		}

		_, err = tx.Exec(`INSERT INTO best_performances
			(activity_id, activity_type, distance_km, best_pace, achieved_at)
			VALUES (?, ?, ?, ?, ?)`,
			p.ActivityID, string(p.ActivityType), p.DistanceKm, p.BestPace, p.AchievedAt.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert best performance: %w", err)
		}
		return nil
	})
}

// ListByType retrieves the leaderboard rows for an activity type, ordered by
// distance then pace.
func (r *BestPerformanceRepository) ListByType(at models.ActivityType) ([]models.BestPerformance, error) {
	rows, err := r.db.Query(`SELECT id, activity_id, activity_type, distance_km, best_pace, achieved_at, created_at
		FROM best_performances
		WHERE activity_type = ?
		ORDER BY distance_km ASC, best_pace ASC`, string(at))
	if err != nil {
		return nil, fmt.Errorf("failed to query best performances: %w", err)
	}
	defer rows.Close()

	return scanBestPerformances(rows)
}

// ListByKey retrieves the up-to-three leaderboard rows for one (activity
// type, distance) pair, fastest first.
func (r *BestPerformanceRepository) ListByKey(at models.ActivityType, distanceKm float64) ([]models.BestPerformance, error) {
	rows, err := r.db.Query(`SELECT id, activity_id, activity_type, distance_km, best_pace, achieved_at, created_at
		FROM best_performances
		WHERE activity_type = ? AND distance_km = ?
		ORDER BY best_pace ASC
		LIMIT ?`, string(at), distanceKm, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query best performances: %w", err)
	}
	defer rows.Close()

	return scanBestPerformances(rows)
}

func scanBestPerformances(rows *sql.Rows) ([]models.BestPerformance, error) {
	var perfs []models.BestPerformance
	for rows.Next() {
		var p models.BestPerformance
		var at string
		var achieved int64
		if err := rows.Scan(&p.ID, &p.ActivityID, &at, &p.DistanceKm, &p.BestPace, &achieved, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan best performance: %w", err)
		}
		p.ActivityType = models.ActivityType(at)
		p.AchievedAt = time.Unix(achieved, 0).UTC()
		perfs = append(perfs, p)
	}
	return perfs, rows.Err()
}
