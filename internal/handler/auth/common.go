package auth

import (
	"time"

	"stripboard/internal/model/auth"
	httputil "stripboard/internal/pkg/http"
)

// ErrorResponse is the shared error envelope.
type ErrorResponse = httputil.ErrorResponse

// UserInfo is the user DTO shared by auth responses.
type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// toUserInfo converts a User entity to its DTO.
func toUserInfo(user *auth.User) UserInfo {
	info := UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}

	if user.LastLoginAt != nil {
		info.LastLoginAt = user.LastLoginAt.Format(time.RFC3339)
	}
	info.CreatedAt = user.CreatedAt.Format(time.RFC3339)

	return info
}
