package export

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stripboard/internal/model/export"
	"stripboard/internal/pkg/ctxutil"
	httputil "stripboard/internal/pkg/http"
)

// ErrorResponse represents an error response
type ErrorResponse = httputil.ErrorResponse

// JobInfo is the export-job data returned by the API.
type JobInfo struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Location    string  `json:"location,omitempty"`
	Status      string  `json:"status"`
	Progress    float64 `json:"progress"`
	DocumentURL string  `json:"document_url,omitempty"`
	Error       string  `json:"error,omitempty"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt string  `json:"completed_at,omitempty"`
}

func toJobInfo(job *export.Job) JobInfo {
	info := JobInfo{
		ID:          job.ID,
		Kind:        string(job.Kind),
		Location:    job.Location,
		Status:      string(job.Status),
		Progress:    job.Progress,
		DocumentURL: job.DocumentURL,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if job.CompletedAt != nil {
		info.CompletedAt = job.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return info
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
