package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/runningmate/runningmate-backend-go/internal/service"
	"github.com/runningmate/runningmate-backend-go/internal/tcx"
	"github.com/runningmate/runningmate-backend-go/pkg/response"
)

// ImportHandler handles TCX file uploads
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Import handles POST /api/v1/import. Expects a multipart form with the TCX
// file in the "file" field.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Unreadable file upload")
		return
	}
	defer file.Close()

	activity, err := h.importService.Import(c.Request.Context(), file, fileHeader.Filename)
	switch {
	case errors.Is(err, service.ErrDuplicateImport):
		response.Conflict(c, err.Error())
	case errors.Is(err, tcx.ErrFormat), errors.Is(err, service.ErrNoTrackpoints):
		response.BadRequest(c, err.Error())
	case err != nil:
		response.InternalError(c, err.Error())
	default:
		response.Created(c, activity)
	}
}
