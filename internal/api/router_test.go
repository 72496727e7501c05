package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/database"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{DisableWeather: true, Tuning: config.DefaultTuning()}
	return SetupRouter(cfg, db)
}

func multipartTCX(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func smallRunTCX() string {
	var points strings.Builder
	start := time.Date(2024, 5, 5, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&points, `<Trackpoint><Time>%s</Time>
<Position><LatitudeDegrees>%f</LatitudeDegrees><LongitudeDegrees>11.5755</LongitudeDegrees></Position>
<AltitudeMeters>520</AltitudeMeters></Trackpoint>`,
			start.Add(time.Duration(i)*30*time.Second).Format(time.RFC3339), 48.1374+float64(i)*0.0009)
	}
	return fmt.Sprintf(`<?xml version="1.0"?>
<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2">
<Activities><Activity Sport="Running"><Lap><Track>%s</Track></Lap></Activity></Activities>
</TrainingCenterDatabase>`, points.String())
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestImportAndListFlow(t *testing.T) {
	router := setupRouter(t)

	body, contentType := multipartTCX(t, "morning.tcx", smallRunTCX())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same file again conflicts.
	body, contentType = multipartTCX(t, "morning.tcx", smallRunTCX())
	req = httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/activities", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listResp struct {
		Data struct {
			Total int64 `json:"total"`
			Data  []struct {
				ID       int64  `json:"id"`
				Category string `json:"category"`
			} `json:"data"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	require.EqualValues(t, 1, listResp.Data.Total)
	require.Equal(t, "Running", listResp.Data.Data[0].Category)

	id := listResp.Data.Data[0].ID
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/activities/%d/segments", id), nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestImportRejectsGarbage(t *testing.T) {
	router := setupRouter(t)

	body, contentType := multipartTCX(t, "junk.tcx", "not a tcx file")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchActivity(t *testing.T) {
	router := setupRouter(t)

	body, contentType := multipartTCX(t, "edit-me.tcx", smallRunTCX())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	patch := strings.NewReader(`{"title":"Intervals"}`)
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/activities/%d", created.Data.ID), patch)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Intervals")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/activities/424242", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBestPerformancesValidation(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/best-performances", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/best-performances?type=Running", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
