package weather

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// stubHTTPClient returns canned responses in order and records requests.
type stubHTTPClient struct {
	responses []stubResponse
	requests  []*http.Request
}

type stubResponse struct {
	status int
	body   string
	err    error
}

func (s *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return nil, errors.New("no canned response")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	if next.err != nil {
		return nil, next.err
	}
	return &http.Response{
		StatusCode: next.status,
		Body:       io.NopCloser(strings.NewReader(next.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func testClient(stub *stubHTTPClient, now time.Time) *Client {
	c := NewClient(stub)
	c.now = func() time.Time { return now }
	return c
}

func TestLookupArchive(t *testing.T) {
	stub := &stubHTTPClient{responses: []stubResponse{{
		status: http.StatusOK,
		body: `{"daily":{"temperature_2m_max":[18.4],"temperature_2m_min":[7.1],
			"precipitation_sum":[0.3],"windspeed_10m_max":[22.0]}}`,
	}}}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testClient(stub, now)

	w, err := c.Lookup(context.Background(), 48.1374, 11.5755, now.AddDate(0, 0, -10))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if w.Source != "archive" {
		t.Errorf("Source = %q, want archive", w.Source)
	}
	if w.MaxTemp == nil || *w.MaxTemp != 18.4 {
		t.Errorf("MaxTemp = %v, want 18.4", w.MaxTemp)
	}
	if w.MinTemp == nil || *w.MinTemp != 7.1 {
		t.Errorf("MinTemp = %v, want 7.1", w.MinTemp)
	}
	if w.MaxWindSpeed == nil || *w.MaxWindSpeed != 22.0 {
		t.Errorf("MaxWindSpeed = %v, want 22.0", w.MaxWindSpeed)
	}

	req := stub.requests[0]
	if !strings.Contains(req.URL.Host, "archive-api.open-meteo.com") {
		t.Errorf("archive lookup hit %s", req.URL.Host)
	}
	if got := req.URL.Query().Get("start_date"); got != "2024-05-22" {
		t.Errorf("start_date = %q, want 2024-05-22", got)
	}
}

func TestLookupCurrent(t *testing.T) {
	stub := &stubHTTPClient{responses: []stubResponse{{
		status: http.StatusOK,
		body:   `{"current":{"temperature_2m":21.5,"windspeed_10m":9.0,"precipitation":0.0,"weathercode":3}}`,
	}}}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testClient(stub, now)

	w, err := c.Lookup(context.Background(), 48.1374, 11.5755, now)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if w.Source != "current" {
		t.Errorf("Source = %q, want current", w.Source)
	}
	// The single current reading stands in for both extremes.
	if w.MaxTemp == nil || w.MinTemp == nil || *w.MaxTemp != 21.5 || *w.MinTemp != 21.5 {
		t.Errorf("temps = %v/%v, want both 21.5", w.MaxTemp, w.MinTemp)
	}
	if w.WeatherCode == nil || *w.WeatherCode != 3 {
		t.Errorf("WeatherCode = %v, want 3", w.WeatherCode)
	}

	if !strings.Contains(stub.requests[0].URL.Host, "api.open-meteo.com") {
		t.Errorf("current lookup hit %s", stub.requests[0].URL.Host)
	}
}

func TestLookupRetriesServerErrors(t *testing.T) {
	stub := &stubHTTPClient{responses: []stubResponse{
		{status: http.StatusBadGateway, body: "bad gateway"},
		{err: errors.New("connection reset")},
		{status: http.StatusOK, body: `{"current":{"temperature_2m":10.0}}`},
	}}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testClient(stub, now)

	w, err := c.Lookup(context.Background(), 48.0, 11.0, now)
	if err != nil {
		t.Fatalf("Lookup after retries: %v", err)
	}
	if len(stub.requests) != 3 {
		t.Errorf("made %d requests, want 3", len(stub.requests))
	}
	if w.MaxTemp == nil || *w.MaxTemp != 10.0 {
		t.Errorf("MaxTemp = %v, want 10.0", w.MaxTemp)
	}
}

func TestLookupClientErrorDoesNotRetry(t *testing.T) {
	stub := &stubHTTPClient{responses: []stubResponse{
		{status: http.StatusBadRequest, body: "bad params"},
	}}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testClient(stub, now)

	_, err := c.Lookup(context.Background(), 48.0, 11.0, now)
	if err == nil {
		t.Fatal("expected error on 400")
	}
	if len(stub.requests) != 1 {
		t.Errorf("made %d requests, want 1", len(stub.requests))
	}
}

func TestLookupGivesUp(t *testing.T) {
	stub := &stubHTTPClient{responses: []stubResponse{
		{err: errors.New("down")},
		{err: errors.New("down")},
		{err: errors.New("down")},
	}}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testClient(stub, now)

	_, err := c.Lookup(context.Background(), 48.0, 11.0, now)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if len(stub.requests) != 3 {
		t.Errorf("made %d requests, want %d", len(stub.requests), maxAttempts)
	}
}
