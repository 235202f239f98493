package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScheduleResponseData is the full schedule payload.
type ScheduleResponseData struct {
	Scenes []SceneInfo `json:"scenes"`
	Count  int         `json:"count"`
}

// GetSchedule returns the caller's full schedule, sorted by scene number.
// @Summary      Get schedule
// @Description  List all scenes in the caller's schedule, ascending by scene number
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scenes, err := h.scheduleService.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "failed to load schedule",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": ScheduleResponseData{
			Scenes: toSceneInfos(scenes),
			Count:  len(scenes),
		},
	})
}
