package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jpillora/backoff"

	"salespulse/pkg/contracts/domain"
)

// ParseCSV reads a header row followed by data rows
func ParseCSV(r io.Reader) ([]domain.RawRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: no header row", ErrInvalidDataset)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	header = cleanHeader(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return rowsFromTable(header, records), header, nil
}

// CSVOptions configures a CSVSource
type CSVOptions struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
	RetryMin   time.Duration
	RetryMax   time.Duration
	Client     *http.Client
}

// CSVSource downloads a CSV export over HTTP, retrying transient failures
// with exponential backoff
type CSVSource struct {
	url        string
	client     *http.Client
	maxRetries int
	retryMin   time.Duration
	retryMax   time.Duration
	logger     *slog.Logger
}

// NewCSVSource creates a CSV source
func NewCSVSource(opts CSVOptions, logger *slog.Logger) *CSVSource {
	if logger == nil {
		logger = slog.Default()
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &CSVSource{
		url:        opts.URL,
		client:     client,
		maxRetries: opts.MaxRetries,
		retryMin:   opts.RetryMin,
		retryMax:   opts.RetryMax,
		logger:     logger.With(slog.String("component", "csv_source")),
	}
}

// Name implements Source
func (s *CSVSource) Name() string { return "csv" }

// Fetch implements Source. Transport errors and 5xx responses are retried;
// 4xx responses and unparseable bodies are not.
func (s *CSVSource) Fetch(ctx context.Context) ([]domain.RawRow, error) {
	b := &backoff.Backoff{
		Min:    s.retryMin,
		Max:    s.retryMax,
		Factor: 2,
		Jitter: true,
	}

	for attempt := 1; ; attempt++ {
		rows, retryable, err := s.fetchOnce(ctx)
		if err == nil {
			s.logger.Info("fetched dataset",
				slog.String("url", s.url),
				slog.Int("rows", len(rows)),
				slog.Int("attempt", attempt))
			return rows, nil
		}
		if !retryable || attempt > s.maxRetries {
			return nil, err
		}

		wait := b.Duration()
		s.logger.Warn("fetch failed, retrying",
			slog.String("error", err.Error()),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, ctx.Err())
		case <-time.After(wait):
		}
	}
}

func (s *CSVSource) fetchOnce(ctx context.Context) ([]domain.RawRow, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("%w: server returned %s", ErrSourceUnavailable, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("%w: server returned %s", ErrSourceUnavailable, resp.Status)
	}

	rows, header, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, false, err
	}
	warnMissingColumns(s.logger, header)
	return rows, false, nil
}
