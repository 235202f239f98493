package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stripboard/internal/model/schedule"
	"stripboard/internal/pkg/ctxutil"
	httputil "stripboard/internal/pkg/http"
)

// ErrorResponse represents an error response
type ErrorResponse = httputil.ErrorResponse

// SceneInfo is the scene data returned by the schedule endpoints.
type SceneInfo struct {
	ID          string   `json:"id"`
	SceneNo     int      `json:"scene_no"`
	Location    string   `json:"location"`
	DayNight    string   `json:"day_night,omitempty"`
	PageCount   float64  `json:"page_count"`
	Description string   `json:"description,omitempty"`
	Vehicles    string   `json:"vehicles,omitempty"`
	Cast        []string `json:"cast"`
	CreatedAt   string   `json:"created_at"`
}

func toSceneInfo(s schedule.Scene) SceneInfo {
	cast := s.Cast
	if cast == nil {
		cast = []string{}
	}
	return SceneInfo{
		ID:          s.ID,
		SceneNo:     s.SceneNo,
		Location:    s.Location,
		DayNight:    s.DayNight,
		PageCount:   s.PageCount,
		Description: s.Description,
		Vehicles:    s.Vehicles,
		Cast:        cast,
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toSceneInfos(scenes []schedule.Scene) []SceneInfo {
	infos := make([]SceneInfo, 0, len(scenes))
	for _, s := range scenes {
		infos = append(infos, toSceneInfo(s))
	}
	return infos
}

// currentUserID extracts the authenticated user id injected by the auth
// middleware. Writes a 401 and returns false when it is missing.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "unauthorized",
			Detail:  "missing user identity",
		})
		return "", false
	}
	return userID, true
}
