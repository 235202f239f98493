package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Suggestions returns the derived index of the caller's schedule: the
// distinct locations, cast names, and vehicles referenced across all
// scenes, in first-seen order. Backs the entry form's autocomplete.
// @Summary      Get suggestions
// @Description  Distinct locations, cast, and vehicles across the schedule
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/schedule/suggestions [get]
func (h *Handler) Suggestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	idx, err := h.scheduleService.Index(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "failed to build index",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    idx,
	})
}
