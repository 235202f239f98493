package auth

import (
	"stripboard/internal/service"
)

// Handler serves the auth endpoints. All auth handler methods reach the
// service layer through this struct.
type Handler struct {
	authService *service.AuthService
}

// NewHandler creates an auth handler.
func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}
