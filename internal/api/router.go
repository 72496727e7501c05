package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/handler"
	"github.com/runningmate/runningmate-backend-go/internal/middleware"
	"github.com/runningmate/runningmate-backend-go/internal/repository"
	"github.com/runningmate/runningmate-backend-go/internal/service"
	"github.com/runningmate/runningmate-backend-go/internal/weather"
)

// SetupRouter wires repositories, services and handlers and returns the
// configured engine.
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS for the local UI
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	activityRepo := repository.NewActivityRepository(db)
	segmentRepo := repository.NewSegmentRepository(db)
	perfRepo := repository.NewBestPerformanceRepository(db)
	weatherRepo := repository.NewWeatherRepository(db)

	var weatherAPI service.WeatherLookup
	if !cfg.DisableWeather {
		weatherAPI = weather.NewClient(&http.Client{Timeout: 15 * time.Second})
	}

	bestPerfService := service.NewBestPerformanceService(perfRepo, activityRepo, segmentRepo, cfg.Tuning)
	activityService := service.NewActivityService(activityRepo, segmentRepo, weatherRepo)
	importService := service.NewImportService(activityRepo, bestPerfService, weatherRepo, weatherAPI, cfg.Tuning)

	importHandler := handler.NewImportHandler(importService)
	activityHandler := handler.NewActivityHandler(activityService)
	bestPerfHandler := handler.NewBestPerformanceHandler(bestPerfService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "RunningMate backend is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/import", importHandler.Import)

		activities := api.Group("/activities")
		{
			activities.GET("", activityHandler.List)
			activities.GET("/:id", activityHandler.Get)
			activities.GET("/:id/segments", activityHandler.Segments)
			activities.GET("/:id/best", bestPerfHandler.ForActivity)
			activities.PATCH("/:id", activityHandler.Update)
		}

		api.GET("/best-performances", bestPerfHandler.Overview)
	}

	return r
}
