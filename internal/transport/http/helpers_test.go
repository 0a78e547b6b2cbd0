package http

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/services"
	"salespulse/internal/shared/testutil"
	"salespulse/pkg/contracts/domain"
)

type fixtureSource struct{}

func (fixtureSource) Name() string { return "fixture" }

func (fixtureSource) Fetch(context.Context) ([]domain.RawRow, error) {
	return testutil.SalesRows(), nil
}

// stubProvider hands out a fixed dashboard, or err when set
type stubProvider struct {
	dashboard *services.Dashboard
	err       error
	refreshes int
}

func (p *stubProvider) Dashboard(context.Context) (*services.Dashboard, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.dashboard, nil
}

func (p *stubProvider) Refresh(ctx context.Context) (*services.Dashboard, error) {
	p.refreshes++
	return p.Dashboard(ctx)
}

func fixtureDashboard(t *testing.T) *services.Dashboard {
	t.Helper()
	cfg := config.Default()
	cfg.Render.Timezone = "UTC"
	logger, _ := testutil.NewTestLogger(t)

	d, err := services.NewReportService(fixtureSource{}, cfg, nil, nil, logger).Build(context.Background())
	require.NoError(t, err)
	return d
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return logger
}

func newErrorHandler(t *testing.T) (*apierrors.ErrorHandler, *testutil.LogCapture) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	return apierrors.NewErrorHandler(logger, false), logs
}

func serve(t *testing.T, mount string, routes chi.Router, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Mount(mount, routes)

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
