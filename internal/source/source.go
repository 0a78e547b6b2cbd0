package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

var (
	// ErrSourceUnavailable means the dataset could not be retrieved
	ErrSourceUnavailable = errors.New("data source unavailable")
	// ErrInvalidDataset means the dataset was retrieved but is not tabular
	ErrInvalidDataset = errors.New("invalid dataset")
)

// Source delivers the raw rows of the sales dataset
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawRow, error)
}

// New creates the source selected by cfg.Kind
func New(ctx context.Context, cfg config.SourceConfig, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Kind {
	case config.SourceCSV:
		return NewCSVSource(CSVOptions{
			URL:        cfg.URL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryMin:   cfg.RetryMin,
			RetryMax:   cfg.RetryMax,
		}, logger), nil
	case config.SourceSheets:
		return NewSheetsSource(ctx, SheetsOptions{
			SheetID:         cfg.SheetID,
			Range:           cfg.Range,
			APIKey:          cfg.APIKey,
			CredentialsFile: cfg.CredentialsFile,
		}, logger)
	case config.SourceFile:
		return NewFileSource(cfg.Path, cfg.Sheet, logger), nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Kind)
	}
}

// MissingColumns lists the required headers absent from header
func MissingColumns(header []string) []string {
	var missing []string
	for _, col := range domain.RequiredColumns {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// cleanHeader strips a UTF-8 byte order mark and surrounding whitespace
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

// rowsFromTable keys every record by header. Short records are padded with
// empty strings; extra cells without a header are dropped.
func rowsFromTable(header []string, records [][]string) []domain.RawRow {
	rows := make([]domain.RawRow, 0, len(records))
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		row := make(domain.RawRow, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func warnMissingColumns(logger *slog.Logger, header []string) {
	if missing := MissingColumns(header); len(missing) > 0 {
		logger.Warn("dataset is missing columns", slog.Any("missing", missing))
	}
}
