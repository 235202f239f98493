package export

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	exportService "stripboard/internal/service/export"
)

// GetJob returns one of the caller's export jobs.
// @Summary      Get export job
// @Description  Fetch an export job's status and progress
// @Tags         exports
// @Produce      json
// @Security     BearerAuth
// @Param        job_id  path      string  true  "job id"
// @Success      200     {object}  map[string]interface{}
// @Failure      401     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/exports/{job_id} [get]
func (h *Handler) GetJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	job, err := h.exportService.Get(c.Request.Context(), userID, c.Param("job_id"))
	if err != nil {
		if errors.Is(err, exportService.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    40401,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "failed to fetch export job",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toJobInfo(job),
	})
}

// ListJobs returns the caller's recent export jobs, newest first.
// @Summary      List export jobs
// @Description  Recent export jobs, newest first
// @Tags         exports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/exports [get]
func (h *Handler) ListJobs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	jobs, err := h.exportService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "failed to list export jobs",
			Detail:  err.Error(),
		})
		return
	}

	infos := make([]JobInfo, 0, len(jobs))
	for _, job := range jobs {
		infos = append(infos, toJobInfo(job))
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"jobs":  infos,
			"count": len(infos),
		},
	})
}
