package export

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	exportService "stripboard/internal/service/export"
)

// Download streams a completed job's document to the caller.
// @Summary      Download export document
// @Description  Stream the finished document of a completed export job
// @Tags         exports
// @Produce      text/plain
// @Security     BearerAuth
// @Param        job_id  path      string  true  "job id"
// @Success      200     {string}  string  "document body"
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/exports/{job_id}/download [get]
func (h *Handler) Download(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rc, job, err := h.exportService.Download(c.Request.Context(), userID, c.Param("job_id"))
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		switch {
		case errors.Is(err, exportService.ErrJobNotFound):
			code = http.StatusNotFound
			errorCode = 40401
		case errors.Is(err, exportService.ErrJobNotCompleted):
			code = http.StatusBadRequest
			errorCode = 40001
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportService.Filename(job)))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.Warn().Err(err).Str("job_id", job.ID).Msg("export download interrupted")
	}
}
