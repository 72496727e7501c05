package models

import "time"

// BestPerformance is one leaderboard row: the pace achieved over a canonical
// distance by one activity. At most three rows are kept per
// (activity type, distance) pair, fastest first.
type BestPerformance struct {
	ID           int64        `json:"id" db:"id"`
	ActivityID   int64        `json:"activity_id" db:"activity_id"`
	ActivityType ActivityType `json:"activity_type" db:"activity_type"`
	DistanceKm   float64      `json:"distance_km" db:"distance_km"`
	BestPace     float64      `json:"best_pace" db:"best_pace"` // min/km, lower is faster
	AchievedAt   time.Time    `json:"achieved_at" db:"achieved_at"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
