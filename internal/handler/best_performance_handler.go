package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runningmate/runningmate-backend-go/internal/models"
	"github.com/runningmate/runningmate-backend-go/internal/repository"
	"github.com/runningmate/runningmate-backend-go/internal/service"
	"github.com/runningmate/runningmate-backend-go/pkg/response"
)

// BestPerformanceHandler handles best-segment and leaderboard requests
type BestPerformanceHandler struct {
	bestPerfService *service.BestPerformanceService
}

// NewBestPerformanceHandler creates a new best-performance handler
func NewBestPerformanceHandler(bestPerfService *service.BestPerformanceService) *BestPerformanceHandler {
	return &BestPerformanceHandler{
		bestPerfService: bestPerfService,
	}
}

// ForActivity handles GET /api/v1/activities/:id/best
func (h *BestPerformanceHandler) ForActivity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return
	}

	best, err := h.bestPerfService.BestForActivity(id)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "Activity not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, best)
}

// Overview handles GET /api/v1/best-performances?type=Running
func (h *BestPerformanceHandler) Overview(c *gin.Context) {
	at, ok := models.ParseActivityType(c.Query("type"))
	if !ok {
		response.BadRequest(c, "Invalid or missing activity type")
		return
	}

	overview, err := h.bestPerfService.Overview(at)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, overview)
}
