package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/singleflight"

	"salespulse/internal/chart"
	"salespulse/internal/config"
	"salespulse/internal/dataprocessing"
	"salespulse/internal/infrastructure"
	"salespulse/internal/source"
	"salespulse/pkg/contracts/domain"
)

// Pipeline stage names, used for spans and the stage duration metric
const (
	StageFetch     = "fetch"
	StageNormalize = "normalize"
	StageAggregate = "aggregate"
	StageRender    = "render"
)

// Dashboard is the outcome of one pipeline run
type Dashboard struct {
	Source      string                 `json:"source"`
	Report      *dataprocessing.Report `json:"report"`
	Board       *chart.Board           `json:"-"`
	GeneratedAt time.Time              `json:"generated_at"`
	Duration    time.Duration          `json:"duration"`
}

// ReportService fetches the sales dataset and turns it into a rendered
// dashboard. The last dashboard is cached for the configured TTL and
// concurrent callers share a single build.
type ReportService struct {
	source     source.Source
	normalizer *dataprocessing.Normalizer
	aggregator *dataprocessing.Aggregator
	layout     Layout
	ttl        time.Duration
	tracer     trace.Tracer
	metrics    *infrastructure.PipelineMetrics
	logger     *slog.Logger
	now        func() time.Time

	builds singleflight.Group

	mu      sync.RWMutex
	current *Dashboard
	lastErr error
}

// NewReportService creates a report service reading from src. A nil tracer or
// metrics disables telemetry.
func NewReportService(src source.Source, cfg *config.Config, tracer trace.Tracer, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *ReportService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	logger = infrastructure.WithComponent(logger, "report_service")
	locale := dataprocessing.ParseLocale(cfg.Render.Locale)

	return &ReportService{
		source:     src,
		normalizer: dataprocessing.NewNormalizer(cfg.Location(), locale, logger),
		aggregator: dataprocessing.NewAggregator(locale, logger),
		layout:     LayoutFromConfig(cfg.Render),
		ttl:        cfg.Source.CacheTTL,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Dashboard returns the cached dashboard while it is fresh and builds a new
// one otherwise
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if d := s.cached(); d != nil {
		s.metrics.RecordCacheHit(ctx)
		return d, nil
	}
	return s.shared(ctx)
}

// Refresh builds a new dashboard whatever the age of the cached one. The
// cached dashboard stays in place if the build fails.
func (s *ReportService) Refresh(ctx context.Context) (*Dashboard, error) {
	s.logger.InfoContext(ctx, "dashboard refresh requested")
	return s.shared(ctx)
}

// Current returns the last successful dashboard regardless of its age, or nil
func (s *ReportService) Current() *Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LastError returns the error of the most recent failed build, nil after a
// successful one
func (s *ReportService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// SourceName identifies the configured data source
func (s *ReportService) SourceName() string {
	return s.source.Name()
}

func (s *ReportService) cached() *Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || s.ttl <= 0 {
		return nil
	}
	if s.now().Sub(s.current.GeneratedAt) >= s.ttl {
		return nil
	}
	return s.current
}

// shared runs Build once for every caller waiting at the same time. The
// build is detached from the first caller's cancellation so that the
// others still get a result.
func (s *ReportService) shared(ctx context.Context) (*Dashboard, error) {
	ch := s.builds.DoChan("dashboard", func() (interface{}, error) {
		return s.Build(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dashboard), nil
	}
}

// Build runs the whole pipeline without consulting the cache. A successful
// result becomes the cached dashboard.
func (s *ReportService) Build(ctx context.Context) (*Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "report.build",
		trace.WithAttributes(attribute.String("source", s.source.Name())))
	defer span.End()

	start := s.now()
	dashboard, err := s.build(ctx)
	duration := s.now().Sub(start)
	s.metrics.RecordBuild(ctx, duration, err)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		dashboard.GeneratedAt = start
		dashboard.Duration = duration
		s.current = dashboard
	}
	s.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "dashboard build failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return nil, err
	}

	s.logger.InfoContext(ctx, "dashboard built",
		slog.Int("records", dashboard.Report.Summary.Records),
		slog.Int("charts", len(dashboard.Board.All())),
		slog.Duration("duration", duration))
	return dashboard, nil
}

func (s *ReportService) build(ctx context.Context) (*Dashboard, error) {
	var (
		rows    []domain.RawRow
		records []domain.Record
		report  *dataprocessing.Report
		board   *chart.Board
	)

	err := s.stage(ctx, StageFetch, func(ctx context.Context) error {
		var err error
		rows, err = s.source.Fetch(ctx)
		s.metrics.RecordFetch(ctx, s.source.Name(), err)
		if err != nil {
			return fmt.Errorf("fetch from %s: %w", s.source.Name(), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stage(ctx, StageNormalize, func(context.Context) error {
		records = s.normalizer.Normalize(rows)
		return nil
	})

	s.stage(ctx, StageAggregate, func(context.Context) error {
		report = s.aggregator.Build(records)
		return nil
	})
	summary := report.Summary
	s.metrics.RecordRecords(ctx, summary.Records, summary.Records-summary.ValidTimestamps, summary.InvalidAmounts)

	err = s.stage(ctx, StageRender, func(ctx context.Context) error {
		var err error
		board, err = s.Render(ctx, report)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordCharts(ctx, drawnTargets(board))

	return &Dashboard{
		Source: s.source.Name(),
		Report: report,
		Board:  board,
	}, nil
}

// stage runs fn inside its own span and records its duration
func (s *ReportService) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "report."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.metrics.RecordStage(ctx, name, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
