package http

import (
	"bytes"
	"log/slog"
	"net/http"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/exporter"
)

// DashboardHandler serves the interactive dashboard page
type DashboardHandler struct {
	service      DashboardProvider
	page         *exporter.HTMLRenderer
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard page handler
func NewDashboardHandler(service DashboardProvider, page *exporter.HTMLRenderer, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		page:         page,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// ServeDashboard handles GET /
func (h *DashboardHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.page.Render(&buf, dashboard.Board); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
