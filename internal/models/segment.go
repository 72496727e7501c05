package models

import "time"

// Segment is one fixed-distance aggregation window over a track: 1 km for
// running/walking, 5 km for cycling, plus a trailing partial window.
// Average fields are nil when no sample in the window carried that sensor.
type Segment struct {
	ID         int64 `json:"id" db:"id"`
	ActivityID int64 `json:"activity_id" db:"activity_id"`

	// Ordinal position within the activity, starting at 0.
	Number int `json:"segment_number" db:"segment_number"`

	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`
	StartLat  float64   `json:"start_lat" db:"start_lat"`
	StartLon  float64   `json:"start_lon" db:"start_lon"`

	DistanceKm    float64 `json:"distance_km" db:"distance_km"`
	ElevationGain float64 `json:"elevation_gain" db:"elevation_gain"`

	AvgHeartRate *float64 `json:"avg_heart_rate,omitempty" db:"avg_heart_rate"`
	AvgPower     *float64 `json:"avg_power,omitempty" db:"avg_power"`
	AvgSpeed     *float64 `json:"avg_speed,omitempty" db:"avg_speed"`     // m/s
	AvgPace      *float64 `json:"avg_pace,omitempty" db:"avg_pace"`       // min/km
	AvgCadence   *float64 `json:"avg_cadence,omitempty" db:"avg_cadence"` // steps/min, nil for cycling
}

// BestSegment is the fastest contiguous run of segments that first reaches a
// canonical distance within one activity.
type BestSegment struct {
	DistanceKm float64   `json:"distance_km"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	AvgPace    float64   `json:"avg_pace"` // min/km
}
