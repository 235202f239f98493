package schedule

import (
	scheduleService "stripboard/internal/service/schedule"
)

// Handler serves the schedule and breakdown endpoints. All schedule
// handler methods reach the service layer through this struct.
type Handler struct {
	scheduleService *scheduleService.Service
}

// NewHandler creates a schedule handler.
func NewHandler(svc *scheduleService.Service) *Handler {
	return &Handler{
		scheduleService: svc,
	}
}
