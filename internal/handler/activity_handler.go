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

// ActivityHandler handles HTTP requests for stored activities
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// List handles GET /api/v1/activities
func (h *ActivityHandler) List(c *gin.Context) {
	var filter models.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if filter.Category != "" {
		if _, ok := models.ParseActivityType(filter.Category); !ok {
			response.BadRequest(c, "Invalid category")
			return
		}
	}

	result, err := h.activityService.List(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// Get handles GET /api/v1/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.activityService.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "Activity not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, detail)
}

// Segments handles GET /api/v1/activities/:id/segments
func (h *ActivityHandler) Segments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	segments, err := h.activityService.Segments(id)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "Activity not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, segments)
}

// Update handles PATCH /api/v1/activities/:id
func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update models.ActivityUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if update.Title == nil && update.Comment == nil {
		response.BadRequest(c, "Nothing to update")
		return
	}

	activity, err := h.activityService.UpdateEditable(id, update)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "Activity not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, activity)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid activity ID")
		return 0, false
	}
	return id, true
}
