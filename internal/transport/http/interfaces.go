package http

import (
	"context"

	"salespulse/internal/services"
)

// DashboardProvider is what the report, chart and page handlers need from
// the report service
type DashboardProvider interface {
	Dashboard(ctx context.Context) (*services.Dashboard, error)
	Refresh(ctx context.Context) (*services.Dashboard, error)
}
