package export

import (
	exportService "stripboard/internal/service/export"
)

// Handler serves the export-job endpoints.
type Handler struct {
	exportService *exportService.Service
}

// NewHandler creates an export handler.
func NewHandler(svc *exportService.Service) *Handler {
	return &Handler{
		exportService: svc,
	}
}
