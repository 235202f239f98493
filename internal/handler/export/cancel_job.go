package export

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	exportService "stripboard/internal/service/export"
)

// CancelJob cancels a pending or running export job.
// @Summary      Cancel export job
// @Description  Stop a pending or running export job
// @Tags         exports
// @Produce      json
// @Security     BearerAuth
// @Param        job_id  path      string  true  "job id"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/exports/{job_id}/cancel [post]
func (h *Handler) CancelJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.exportService.Cancel(c.Request.Context(), userID, c.Param("job_id"))
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		switch {
		case errors.Is(err, exportService.ErrJobNotFound):
			code = http.StatusNotFound
			errorCode = 40401
		case errors.Is(err, exportService.ErrJobNotRunning):
			code = http.StatusBadRequest
			errorCode = 40001
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "cancellation requested",
	})
}
