package config

import (
	"os"

	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// Config holds application configuration.
type Config struct {
	Port   string
	DBPath string

	// DisableWeather turns off the open-meteo enrichment on import.
	DisableWeather bool

	// Tuning carries every per-activity numeric policy. Loaded with
	// defaults; tests inject their own.
	Tuning Tuning
}

// Load loads configuration from environment variables with defaults.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/running_data.db"
	}

	disableWeather := os.Getenv("DISABLE_WEATHER") == "1" || os.Getenv("DISABLE_WEATHER") == "true"

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		DisableWeather: disableWeather,
		Tuning:         DefaultTuning(),
	}
}

// PaceBand is the valid per-sample pace range in min/km for one activity
// type. Samples outside the band become absent, never clamped. MinDistMeters
// is the minimum per-sample distance for a pace value to be meaningful.
type PaceBand struct {
	Min           float64
	Max           float64
	MinDistMeters float64
}

// CyclingPhysics holds the coefficients of the cycling power model.
type CyclingPhysics struct {
	RiderWeight       float64 // kg
	BikeWeight        float64 // kg
	RollingResistance float64
	AirDensity        float64 // kg/m³
	DragArea          float64 // m²
	WindSpeed         float64 // m/s
}

// FootPhysics holds the coefficients of the running/walking power model.
type FootPhysics struct {
	Weight         float64 // kg
	ShoeResistance float64
}

// Tuning is the full per-activity-type numeric policy: pace bands, segment
// lengths, physics coefficients, metabolic efficiency, pause threshold and
// canonical race distances. Everything here is data so new activity types
// need no code changes in the algorithms.
type Tuning struct {
	PaceBands       map[models.ActivityType]PaceBand
	SegmentLengthKm map[models.ActivityType]float64
	Distances       map[models.ActivityType][]float64 // canonical distances, km
	Efficiency      map[models.ActivityType]float64   // metabolic efficiency for calories

	Cycling CyclingPhysics
	Running FootPhysics
	Walking FootPhysics

	PauseThresholdSeconds float64
	Gravity               float64 // m/s²
}

// DefaultTuning returns the recognized default policy.
func DefaultTuning() Tuning {
	return Tuning{
		PaceBands: map[models.ActivityType]PaceBand{
			models.TypeRun:     {Min: 3, Max: 12, MinDistMeters: 0.5},
			models.TypeCycle:   {Min: 0.5, Max: 6, MinDistMeters: 5},
			models.TypeWalk:    {Min: 8, Max: 25, MinDistMeters: 0.2},
			models.TypeUnknown: {Min: 2, Max: 20, MinDistMeters: 0.5},
		},
		SegmentLengthKm: map[models.ActivityType]float64{
			models.TypeRun:     1.0,
			models.TypeWalk:    1.0,
			models.TypeCycle:   5.0,
			models.TypeUnknown: 1.0,
		},
		Distances: map[models.ActivityType][]float64{
			models.TypeRun:   {1, 5, 10, 21, 42},
			models.TypeWalk:  {1, 5, 10, 15, 20, 30, 50},
			models.TypeCycle: {5, 25, 50, 75, 100, 150, 200},
		},
		Efficiency: map[models.ActivityType]float64{
			models.TypeCycle:   0.25,
			models.TypeRun:     0.20,
			models.TypeWalk:    0.20,
			models.TypeUnknown: 0.20,
		},
		Cycling: CyclingPhysics{
			RiderWeight:       70,
			BikeWeight:        8,
			RollingResistance: 0.004,
			AirDensity:        1.225,
			DragArea:          0.27,
			WindSpeed:         0,
		},
		Running: FootPhysics{Weight: 70, ShoeResistance: 0.02},
		Walking: FootPhysics{Weight: 70, ShoeResistance: 0.03},

		PauseThresholdSeconds: 10,
		Gravity:               9.81,
	}
}

// PaceBand returns the band for the given type, falling back to the
// unknown-type band.
func (t Tuning) PaceBand(at models.ActivityType) PaceBand {
	if b, ok := t.PaceBands[at]; ok {
		return b
	}
	return t.PaceBands[models.TypeUnknown]
}

// SegmentLength returns the segment window length in km for the given type.
func (t Tuning) SegmentLength(at models.ActivityType) float64 {
	if l, ok := t.SegmentLengthKm[at]; ok {
		return l
	}
	return t.SegmentLengthKm[models.TypeUnknown]
}

// MetabolicEfficiency returns the calorie-model efficiency for the type.
func (t Tuning) MetabolicEfficiency(at models.ActivityType) float64 {
	if e, ok := t.Efficiency[at]; ok {
		return e
	}
	return t.Efficiency[models.TypeUnknown]
}
