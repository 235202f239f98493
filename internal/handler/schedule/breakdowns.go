package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	scheduleService "stripboard/internal/service/schedule"
)

// BreakdownInfo is one location's breakdown payload.
type BreakdownInfo struct {
	Location string      `json:"location"`
	Scenes   []SceneInfo `json:"scenes"`
	Count    int         `json:"count"`
}

// ListBreakdowns returns the breakdown locations, sorted lexicographically.
// @Summary      List breakdown locations
// @Description  Distinct schedule locations, lexicographically sorted
// @Tags         breakdowns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/breakdowns [get]
func (h *Handler) ListBreakdowns(c *gin.Context) {
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

	locations := scheduleService.LocationsSorted(idx)
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"locations": locations,
			"count":     len(locations),
		},
	})
}

// GetBreakdown returns the scenes shot at one location, sorted by scene
// number. An unknown location yields an empty breakdown, not a 404.
// @Summary      Get breakdown
// @Description  Scenes at one location, ascending by scene number
// @Tags         breakdowns
// @Produce      json
// @Security     BearerAuth
// @Param        location  path      string  true  "location name"
// @Success      200       {object}  map[string]interface{}
// @Failure      401       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /api/v1/breakdowns/{location} [get]
func (h *Handler) GetBreakdown(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	location := c.Param("location")
	scenes, err := h.scheduleService.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "failed to load schedule",
			Detail:  err.Error(),
		})
		return
	}

	matched := scheduleService.BreakdownFor(scenes, location)
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": BreakdownInfo{
			Location: location,
			Scenes:   toSceneInfos(matched),
			Count:    len(matched),
		},
	})
}
