package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// FormatPace renders a pace or minute value as MM:SS. Absent (NaN) values
// render as "00:00".
func FormatPace(pace float64) string {
	if math.IsNaN(pace) {
		return "00:00"
	}
	minutes := int(pace)
	seconds := int(math.Round((pace - float64(minutes)) * 60))
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GenerateTitle builds the default activity title from the activity type and
// the time-of-day bucket of its start timestamp, e.g. "Run in the Afternoon".
func GenerateTitle(at models.ActivityType, start time.Time) string {
	label := "Activity"
	switch at {
	case models.TypeRun:
		label = "Run"
	case models.TypeWalk:
		label = "Walk"
	case models.TypeCycle:
		label = "Ride"
	}

	hour := start.UTC().Hour()
	var timeOfDay string
	switch {
	case hour >= 5 && hour < 12:
		timeOfDay = "in the Morning"
	case hour >= 12 && hour < 17:
		timeOfDay = "in the Afternoon"
	case hour >= 17 && hour < 21:
		timeOfDay = "in the Evening"
	default:
		timeOfDay = "at Night"
	}

	return label + " " + timeOfDay
}
