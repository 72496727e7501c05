// Package weather fetches weather snapshots from the open-meteo API for the
// midpoint of an activity's trajectory. Lookups are best effort; callers
// treat a failed fetch as a missing snapshot, never as an import failure.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/runningmate/runningmate-backend-go/internal/models"
)

const (
	forecastURL = "https://api.open-meteo.com/v1/forecast"
	archiveURL  = "https://archive-api.open-meteo.com/v1/archive"

	maxAttempts = 3
	baseBackoff = 500 * time.Millisecond
)

// HTTPClient abstracts HTTP operations for testability.
// Use *http.Client for production; MockHTTPClient for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client looks up weather for a location and date. Activities dated today or
// later use the forecast endpoint, older ones the archive endpoint.
type Client struct {
	httpClient  HTTPClient
	forecastURL string
	archiveURL  string
	now         func() time.Time
}

// NewClient creates a weather client. A nil httpClient falls back to a
// default client with a 15 second timeout.
func NewClient(httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient:  httpClient,
		forecastURL: forecastURL,
		archiveURL:  archiveURL,
		now:         time.Now,
	}
}

type currentResponse struct {
	Current *struct {
		Temperature   *float64 `json:"temperature_2m"`
		WindSpeed     *float64 `json:"windspeed_10m"`
		Precipitation *float64 `json:"precipitation"`
		WeatherCode   *int     `json:"weathercode"`
	} `json:"current"`
}

type archiveResponse struct {
	Daily *struct {
		MaxTemp       []*float64 `json:"temperature_2m_max"`
		MinTemp       []*float64 `json:"temperature_2m_min"`
		Precipitation []*float64 `json:"precipitation_sum"`
		MaxWindSpeed  []*float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Lookup fetches the weather for a location on a given date. Dates before
// today query the daily archive; today and future dates query the current
// conditions, with the single reading standing in for both the daily max and
// min.
func (c *Client) Lookup(ctx context.Context, lat, lon float64, date time.Time) (*models.Weather, error) {
	today := c.now().UTC().Format("2006-01-02")
	day := date.UTC().Format("2006-01-02")

	if day < today {
		return c.archive(ctx, lat, lon, day)
	}
	return c.current(ctx, lat, lon)
}

func (c *Client) current(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("current", "temperature_2m,windspeed_10m,precipitation,weathercode")
	q.Set("timezone", "auto")

	var parsed currentResponse
	if err := c.fetch(ctx, c.forecastURL+"?"+q.Encode(), &parsed); err != nil {
		return nil, err
	}
	if parsed.Current == nil {
		return nil, fmt.Errorf("weather: response missing current block")
	}

	// Single observation stands in for the daily range.
	return &models.Weather{
		MaxTemp:       parsed.Current.Temperature,
		MinTemp:       parsed.Current.Temperature,
		Precipitation: parsed.Current.Precipitation,
		MaxWindSpeed:  parsed.Current.WindSpeed,
		WeatherCode:   parsed.Current.WeatherCode,
		Source:        "current",
	}, nil
}

func (c *Client) archive(ctx context.Context, lat, lon float64, day string) (*models.Weather, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("start_date", day)
	q.Set("end_date", day)
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max")
	q.Set("timezone", "auto")

	var parsed archiveResponse
	if err := c.fetch(ctx, c.archiveURL+"?"+q.Encode(), &parsed); err != nil {
		return nil, err
	}
	if parsed.Daily == nil {
		return nil, fmt.Errorf("weather: response missing daily block")
	}

	w := &models.Weather{Source: "archive"}
	if len(parsed.Daily.MaxTemp) > 0 {
		w.MaxTemp = parsed.Daily.MaxTemp[0]
	}
	if len(parsed.Daily.MinTemp) > 0 {
		w.MinTemp = parsed.Daily.MinTemp[0]
	}
	if len(parsed.Daily.Precipitation) > 0 {
		w.Precipitation = parsed.Daily.Precipitation[0]
	}
	if len(parsed.Daily.MaxWindSpeed) > 0 {
		w.MaxWindSpeed = parsed.Daily.MaxWindSpeed[0]
	}
	return w, nil
}

// fetch performs a GET with bounded exponential backoff on transport errors
// and 5xx responses.
func (c *Client) fetch(ctx context.Context, rawURL string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(baseBackoff << (attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("weather: creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("weather: status %d: %s", resp.StatusCode, string(body))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("weather: status %d: %s", resp.StatusCode, string(body))
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("weather: decoding response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("weather: giving up after %d attempts: %w", maxAttempts, lastErr)
}
