// Package tcx parses Training Center Database (TCX) activity recordings
// into the columnar track representation the pipeline operates on.
package tcx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/models"
)

// ErrFormat marks a structurally invalid recording. A file with zero valid
// trackpoints is not a format error; it parses into an empty track.
var ErrFormat = errors.New("invalid TCX file")

type tcxFile struct {
	XMLName    xml.Name      `xml:"TrainingCenterDatabase"`
	Activities []tcxActivity `xml:"Activities>Activity"`
}

type tcxActivity struct {
	Sport string   `xml:"Sport,attr"`
	Laps  []tcxLap `xml:"Lap"`
}

type tcxLap struct {
	Trackpoints []tcxTrackpoint `xml:"Track>Trackpoint"`
}

type tcxTrackpoint struct {
	Time      string       `xml:"Time"`
	Position  *tcxPosition `xml:"Position"`
	Altitude  *float64     `xml:"AltitudeMeters"`
	HeartRate *int         `xml:"HeartRateBpm>Value"`
	TPX       *tcxTPX      `xml:"Extensions>TPX"`
}

type tcxPosition struct {
	Lat float64 `xml:"LatitudeDegrees"`
	Lon float64 `xml:"LongitudeDegrees"`
}

// tcxTPX is the ActivityExtension block; the whole block may be absent.
type tcxTPX struct {
	RunCadence *int `xml:"RunCadence"`
	Watts      *int `xml:"Watts"`
}

// Parse reads a TCX recording and returns the columnar track plus the raw
// Sport label ("Unknown" when absent). Samples missing any of latitude,
// longitude, elevation or timestamp are dropped; heart rate, cadence and
// power stay optional per sample.
//
// Heart-rate values are collected in arrival order across the whole stream
// and joined back by position, the way the recording devices this supports
// emit them. When a device emits heart rate at a different cadence than
// position fixes the tail of the shorter series comes out absent.
func Parse(r io.Reader) (*models.Track, string, error) {
	var doc tcxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFormat, err)
	}

	sport := "Unknown"
	if len(doc.Activities) > 0 && doc.Activities[0].Sport != "" {
		sport = doc.Activities[0].Sport
	}

	track := &models.Track{}
	var heartRates []float64

	for _, act := range doc.Activities {
		for _, lap := range act.Laps {
			for _, tp := range lap.Trackpoints {
				if tp.HeartRate != nil {
					heartRates = append(heartRates, float64(*tp.HeartRate))
				}

				if tp.Position == nil || tp.Altitude == nil || tp.Time == "" {
					continue
				}
				ts, err := time.Parse(time.RFC3339, tp.Time)
				if err != nil {
					continue
				}

				track.Time = append(track.Time, ts)
				track.Latitude = append(track.Latitude, tp.Position.Lat)
				track.Longitude = append(track.Longitude, tp.Position.Lon)
				track.Elevation = append(track.Elevation, *tp.Altitude)

				cadence, power := math.NaN(), math.NaN()
				if tp.TPX != nil {
					if tp.TPX.RunCadence != nil {
						cadence = float64(*tp.TPX.RunCadence)
					}
					if tp.TPX.Watts != nil {
						power = float64(*tp.TPX.Watts)
					}
				}
				track.Cadence = append(track.Cadence, cadence)
				track.Power = append(track.Power, power)
			}
		}
	}

	// Positional join of the independent heart-rate series.
	track.HeartRate = make([]float64, track.Len())
	for i := range track.HeartRate {
		if i < len(heartRates) {
			track.HeartRate[i] = heartRates[i]
		} else {
			track.HeartRate[i] = math.NaN()
		}
	}

	return track, sport, nil
}
