package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"salespulse/internal/infrastructure"
)

// DashboardState is the part of the report service the health checks read
type DashboardState interface {
	Current() *Dashboard
	LastError() error
	SourceName() string
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	dashboard DashboardState
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a health service reporting on dashboard
func NewHealthService(version, buildTime, buildID string, dashboard DashboardState, logger *slog.Logger) *HealthService {
	logger = infrastructure.WithComponent(logger, "health_service")

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("build_id", buildID))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		buildID:   buildID,
		dashboard: dashboard,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready once a dashboard has been built. A failing
// source does not make the service unready while a previous dashboard can
// still be served.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"source":    hs.checkSourceHealth(),
			"dashboard": hs.checkDashboardHealth(),
		},
	}

	if sh, ok := status.Services["dashboard"].(ServiceHealth); ok && sh.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "readiness check failed", slog.String("reason", sh.Message))
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}

	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	if hs.buildID != "" {
		result["build_id"] = hs.buildID
	}

	return result
}

func (hs *HealthService) checkSourceHealth() ServiceHealth {
	if hs.dashboard == nil {
		return ServiceHealth{Status: "not_ready", Message: "report service not initialized"}
	}
	if err := hs.dashboard.LastError(); err != nil {
		return ServiceHealth{
			Status:  "degraded",
			Message: fmt.Sprintf("last fetch from %s failed: %v", hs.dashboard.SourceName(), err),
		}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("source %s is reachable", hs.dashboard.SourceName()),
	}
}

func (hs *HealthService) checkDashboardHealth() ServiceHealth {
	if hs.dashboard == nil {
		return ServiceHealth{Status: "not_ready", Message: "report service not initialized"}
	}
	current := hs.dashboard.Current()
	if current == nil {
		return ServiceHealth{Status: "not_ready", Message: "no dashboard built yet"}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("dashboard generated at %s", current.GeneratedAt.Format(time.RFC3339)),
		Uptime:  time.Since(current.GeneratedAt).Round(time.Second).String(),
	}
}
