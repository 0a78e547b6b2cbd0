package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// PipelineMetrics holds the instruments of the HTTP layer and the dashboard
// pipeline
type PipelineMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	BuildsTotal       metric.Int64Counter
	BuildDuration     metric.Float64Histogram
	StageDuration     metric.Float64Histogram
	RecordsProcessed  metric.Int64Counter
	InvalidTimestamps metric.Int64Counter
	InvalidAmounts    metric.Int64Counter
	ChartsRendered    metric.Int64Counter
	FetchAttempts     metric.Int64Counter
	CacheHits         metric.Int64Counter
}

// NewPipelineMetrics registers the pipeline instruments on meter. A nil
// meter yields no-op instruments.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(MeterName)
	}

	m := &PipelineMetrics{}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.HTTPRequestsTotal, "http_requests_total", "Total number of HTTP requests"},
		{&m.BuildsTotal, "dashboard_builds_total", "Total number of dashboard builds"},
		{&m.RecordsProcessed, "records_processed_total", "Sales lines normalized"},
		{&m.InvalidTimestamps, "records_invalid_timestamp_total", "Sales lines without a parseable timestamp"},
		{&m.InvalidAmounts, "records_invalid_amount_total", "Sales lines without a numeric amount"},
		{&m.ChartsRendered, "charts_rendered_total", "Chart targets drawn"},
		{&m.FetchAttempts, "source_fetch_total", "Data source fetches"},
		{&m.CacheHits, "dashboard_cache_hits_total", "Requests served from the cached dashboard"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.HTTPRequestDuration, "http_request_duration_seconds", "HTTP request duration in seconds"},
		{&m.BuildDuration, "dashboard_build_duration_seconds", "Dashboard build duration in seconds"},
		{&m.StageDuration, "dashboard_stage_duration_seconds", "Duration of one pipeline stage in seconds"},
	}
	for _, h := range histograms {
		if *h.dst, err = meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("s")); err != nil {
			return nil, err
		}
	}

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordStage records how long one pipeline stage took
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordBuild records a finished dashboard build
func (m *PipelineMetrics) RecordBuild(ctx context.Context, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := attribute.String("status", "success")
	if err != nil {
		status = attribute.String("status", "failure")
	}
	m.BuildsTotal.Add(ctx, 1, metric.WithAttributes(status))
	m.BuildDuration.Record(ctx, d.Seconds(), metric.WithAttributes(status))
}

// RecordFetch records one data source fetch
func (m *PipelineMetrics) RecordFetch(ctx context.Context, source string, err error) {
	if m == nil {
		return
	}
	m.FetchAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.Bool("success", err == nil),
	))
}

// RecordRecords records normalization counters of one build
func (m *PipelineMetrics) RecordRecords(ctx context.Context, total, invalidTimestamps, invalidAmounts int) {
	if m == nil {
		return
	}
	m.RecordsProcessed.Add(ctx, int64(total))
	m.InvalidTimestamps.Add(ctx, int64(invalidTimestamps))
	m.InvalidAmounts.Add(ctx, int64(invalidAmounts))
}

// RecordCharts records how many targets a build drew
func (m *PipelineMetrics) RecordCharts(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.ChartsRendered.Add(ctx, int64(n))
}

// RecordCacheHit records a request answered from the cached dashboard
func (m *PipelineMetrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1)
}

// RecordHTTPRequest records one served request
func (m *PipelineMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, d.Seconds(), attrs)
}
