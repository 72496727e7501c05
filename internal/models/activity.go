package models

import "time"

// Activity is the canonical computed record produced by one import. It is
// what persistence, the best-performance cache and the UI consume. Pointer
// fields are nil when the underlying sensor was absent for the whole track.
type Activity struct {
	ID           int64        `json:"id" db:"id"`
	FileID       string       `json:"file_id,omitempty" db:"file_id"`
	ActivityType string       `json:"activity_type" db:"activity_type"` // raw device label
	Category     ActivityType `json:"category" db:"category"`           // normalized

	Date  time.Time `json:"date" db:"date"`
	Title string    `json:"title" db:"title"`

	DistanceKm      float64 `json:"distance_km" db:"distance_km"`
	DurationSeconds float64 `json:"duration_seconds" db:"duration_seconds"`
	ElevationGain   int     `json:"elevation_gain" db:"elevation_gain"`
	Calories        int     `json:"calories" db:"calories"`

	AvgSpeedKmh  float64  `json:"avg_speed_kmh" db:"avg_speed_kmh"`
	AvgPower     *float64 `json:"avg_power,omitempty" db:"avg_power"`
	AvgHeartRate *int     `json:"avg_heart_rate,omitempty" db:"avg_heart_rate"`

	// Pace strings in MM:SS min/km; "00:00" when no sample survived the
	// pace band filter.
	AvgPace     string `json:"avg_pace" db:"avg_pace"`
	FastestPace string `json:"fastest_pace" db:"fastest_pace"`
	SlowestPace string `json:"slowest_pace" db:"slowest_pace"`
	Pause       string `json:"pause" db:"pause"` // MM:SS paused minutes

	// Step stats, run/walk only.
	AvgSteps   *int `json:"avg_steps,omitempty" db:"avg_steps"`
	TotalSteps *int `json:"total_steps,omitempty" db:"total_steps"`

	Comment string `json:"comment,omitempty" db:"comment"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ActivityFilter holds query parameters for listing activities.
type ActivityFilter struct {
	Category    string  `form:"category"` // normalized type, empty for all
	StartDate   int64   `form:"startDate"`
	EndDate     int64   `form:"endDate"`
	MinDistance float64 `form:"minDistance"`
	MaxDistance float64 `form:"maxDistance"`
	Page        int     `form:"page"`
	PageSize    int     `form:"pageSize"`
}

// ActivityListResponse is the paginated payload for activity listings.
type ActivityListResponse struct {
	Data       []Activity `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// ActivityUpdate carries the only fields editable after import. Edits never
// re-run the pipeline.
type ActivityUpdate struct {
	Title   *string `json:"title,omitempty"`
	Comment *string `json:"comment,omitempty"`
}
