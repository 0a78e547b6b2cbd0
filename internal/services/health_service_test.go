package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/shared/testutil"
)

type stubDashboardState struct {
	current *Dashboard
	err     error
}

func (s stubDashboardState) Current() *Dashboard { return s.current }
func (s stubDashboardState) LastError() error    { return s.err }
func (s stubDashboardState) SourceName() string  { return "csv" }

func TestHealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("1.2.3", "", "", stubDashboardState{}, logger)

	status := hs.HealthCheck(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestReadinessCheck(t *testing.T) {
	built := &Dashboard{GeneratedAt: time.Now().Add(-time.Minute)}

	tests := []struct {
		name      string
		state     DashboardState
		want      string
		source    string
		dashboard string
	}{
		{"no dashboard yet", stubDashboardState{}, "not_ready", "ready", "not_ready"},
		{"dashboard built", stubDashboardState{current: built}, "ready", "ready", "ready"},
		{"stale after failed refresh", stubDashboardState{current: built, err: errors.New("timeout")}, "ready", "degraded", "ready"},
		{"never built and failing", stubDashboardState{err: errors.New("timeout")}, "not_ready", "degraded", "not_ready"},
		{"no report service", nil, "not_ready", "not_ready", "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			hs := NewHealthService("1.0.0", "", "", tt.state, logger)

			status := hs.ReadinessCheck(context.Background())

			assert.Equal(t, tt.want, status.Status)
			require.Contains(t, status.Services, "source")
			assert.Equal(t, tt.source, status.Services["source"].(ServiceHealth).Status)
			assert.Equal(t, tt.dashboard, status.Services["dashboard"].(ServiceHealth).Status)
		})
	}
}

func TestLivenessCheck(t *testing.T) {
	hs := NewHealthService("1.0.0", "", "", nil, nil)

	status := hs.LivenessCheck(context.Background())

	assert.Equal(t, "alive", status.Status)
	assert.Contains(t, status.Runtime, "uptime")
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestVersion(t *testing.T) {
	hs := NewHealthService("1.0.0", "2024-01-01T00:00:00Z", "abc123", nil, nil)

	info := hs.Version()

	assert.Equal(t, "1.0.0", info["version"])
	assert.Equal(t, "2024-01-01T00:00:00Z", info["build_time"])
	assert.Equal(t, "abc123", info["build_id"])
	assert.Contains(t, info, "go_version")

	bare := NewHealthService("1.0.0", "", "", nil, nil).Version()
	assert.NotContains(t, bare, "build_time")
	assert.NotContains(t, bare, "build_id")
}
