package handler

import (
	"log/slog"
	"net/http"

	"autohaus-crm/internal/domain/dashboard"
)

type DashboardHandler struct {
	service dashboard.DashboardService
	logger  *slog.Logger
}

func NewDashboardHandler(s dashboard.DashboardService, l *slog.Logger) *DashboardHandler {
	if s == nil {
		panic("dashboard service cannot be nil")
	}
	return &DashboardHandler{
		service: s,
		logger:  l.With("component", "DashboardHandler"),
	}
}

// GetStats handles GET /dashboard/stats
// @Summary Entity counts for the landing page
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dashboard.Stats "Current counts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
// @Security BearerAuth
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to get dashboard stats", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
