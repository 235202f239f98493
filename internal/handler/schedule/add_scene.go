package schedule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stripboard/internal/model/schedule"
)

// AddSceneRequest is the new-scene payload. SceneNo is the sort key and
// need not be unique; PageCount accepts fractions of a script page.
type AddSceneRequest struct {
	SceneNo     int      `json:"scene_no"`
	Location    string   `json:"location" binding:"required"`
	DayNight    string   `json:"day_night"`
	PageCount   float64  `json:"page_count"`
	Description string   `json:"description"`
	Vehicles    string   `json:"vehicles"`
	Cast        []string `json:"cast"`
}

// AddScene appends a scene to the caller's schedule.
// @Summary      Add scene
// @Description  Validate and add a scene; returns the re-sorted schedule
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      AddSceneRequest  true  "new scene"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/schedule/scenes [post]
func (h *Handler) AddScene(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AddSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	draft := schedule.SceneDraft{
		SceneNo:     req.SceneNo,
		Location:    req.Location,
		DayNight:    req.DayNight,
		PageCount:   req.PageCount,
		Description: req.Description,
		Vehicles:    req.Vehicles,
		Cast:        req.Cast,
	}

	scenes, err := h.scheduleService.Add(c.Request.Context(), userID, draft)
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		switch {
		case errors.Is(err, schedule.ErrLocationRequired),
			errors.Is(err, schedule.ErrCastLimitExceeded),
			errors.Is(err, schedule.ErrDuplicateCastMember):
			code = http.StatusBadRequest
			errorCode = 40001
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "scene added",
		"data": ScheduleResponseData{
			Scenes: toSceneInfos(scenes),
			Count:  len(scenes),
		},
	})
}
