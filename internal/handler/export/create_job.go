package export

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stripboard/internal/model/export"
	exportService "stripboard/internal/service/export"
)

// CreateJobRequest selects what to export. Location is required for the
// breakdown kind and ignored otherwise.
type CreateJobRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Location string `json:"location"`
}

// CreateJob starts an export job.
// @Summary      Create export job
// @Description  Start rendering a master schedule, one breakdown, or all breakdowns
// @Tags         exports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateJobRequest  true  "export selection"
// @Success      202      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/exports [post]
func (h *Handler) CreateJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	job, err := h.exportService.Start(c.Request.Context(), userID, exportService.StartInput{
		Kind:     export.JobKind(req.Kind),
		Location: req.Location,
	})
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		switch {
		case errors.Is(err, exportService.ErrUnknownKind),
			errors.Is(err, exportService.ErrLocationRequired),
			errors.Is(err, exportService.ErrNoLocations):
			code = http.StatusBadRequest
			errorCode = 40001
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"code":    0,
		"message": "export started",
		"data":    toJobInfo(job),
	})
}
