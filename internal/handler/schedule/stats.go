package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats returns scene and distinct-location counts for the caller.
// @Summary      Get stats
// @Description  Scene and distinct-location counters for the dashboard
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/schedule/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.scheduleService.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "failed to compute stats",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    stats,
	})
}
