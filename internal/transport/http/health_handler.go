package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"salespulse/internal/infrastructure"
	"salespulse/internal/services"
)

// HealthHandler serves the probe and version endpoints
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  infrastructure.WithComponent(logger, "health_handler"),
	}
}

// probe writes v uncached with the given status
func probe(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Cache-Control", "no-store")
	render.Status(r, status)
	render.JSON(w, r, v)
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	probe(w, r, http.StatusOK, h.service.HealthCheck(r.Context()))
}

// ReadinessCheck handles GET /api/health/ready. Anything but ready is a 503.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := h.service.ReadinessCheck(r.Context())
	if status.Status == "ready" {
		probe(w, r, http.StatusOK, status)
		return
	}

	h.logger.DebugContext(r.Context(), "readiness probe failed", slog.String("status", status.Status))
	probe(w, r, http.StatusServiceUnavailable, status)
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	probe(w, r, http.StatusOK, h.service.LivenessCheck(r.Context()))
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Version())
}
