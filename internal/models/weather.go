package models

// Weather is the optional enrichment fetched for an activity's midpoint
// location and date. A failed lookup simply leaves the activity without a
// weather row.
type Weather struct {
	ID           int64    `json:"id" db:"id"`
	ActivityID   int64    `json:"activity_id" db:"activity_id"`
	MaxTemp      *float64 `json:"max_temp,omitempty" db:"max_temp"`
	MinTemp      *float64 `json:"min_temp,omitempty" db:"min_temp"`
	Precipitation *float64 `json:"precipitation,omitempty" db:"precipitation"`
	MaxWindSpeed *float64 `json:"max_wind_speed,omitempty" db:"max_wind_speed"`
	WeatherCode  *int     `json:"weather_code,omitempty" db:"weather_code"`
	Source       string   `json:"source,omitempty" db:"source"` // "current" or "archive"
}
