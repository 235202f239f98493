package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteScene removes a scene by id. Deleting an unknown id leaves the
// schedule unchanged and still succeeds.
// @Summary      Delete scene
// @Description  Remove a scene by id; unknown ids are a no-op
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        scene_id  path      string  true  "scene id"
// @Success      200       {object}  map[string]interface{}
// @Failure      401       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /api/v1/schedule/scenes/{scene_id} [delete]
func (h *Handler) DeleteScene(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sceneID := c.Param("scene_id")
	scenes, err := h.scheduleService.Delete(c.Request.Context(), userID, sceneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "failed to delete scene",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "scene deleted",
		"data": ScheduleResponseData{
			Scenes: toSceneInfos(scenes),
			Count:  len(scenes),
		},
	})
}
