package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// WeatherRepository stores weather snapshots fetched for activities.
type WeatherRepository struct {
	db *sql.DB
}

// NewWeatherRepository creates a new weather repository.
func NewWeatherRepository(db *sql.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// Upsert inserts or replaces the weather snapshot for an activity.
func (r *WeatherRepository) Upsert(w models.Weather) error {
	_, err := r.db.Exec(`INSERT INTO weather
		(activity_id, max_temp, min_temp, precipitation, max_wind_speed, weather_code, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(activity_id) DO UPDATE SET
			max_temp = excluded.max_temp,
			min_temp = excluded.min_temp,
			precipitation = excluded.precipitation,
			max_wind_speed = excluded.max_wind_speed,
			weather_code = excluded.weather_code,
			source = excluded.source`,
		w.ActivityID, w.MaxTemp, w.MinTemp, w.Precipitation, w.MaxWindSpeed, w.WeatherCode, w.Source)
	if err != nil {
		return fmt.Errorf("failed to upsert weather: %w", err)
	}
	return nil
}

// GetByActivityID retrieves the weather snapshot for an activity, or
// ErrNotFound when none was recorded.
func (r *WeatherRepository) GetByActivityID(activityID int64) (*models.Weather, error) {
	var w models.Weather
	err := r.db.QueryRow(`SELECT id, activity_id, max_temp, min_temp, precipitation, max_wind_speed, weather_code, source
		FROM weather WHERE activity_id = ?`, activityID).
		Scan(&w.ID, &w.ActivityID, &w.MaxTemp, &w.MinTemp, &w.Precipitation, &w.MaxWindSpeed, &w.WeatherCode, &w.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weather: %w", err)
	}
	return &w, nil
}
