package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"salespulse/pkg/contracts/domain"
)

// SheetsOptions configures a SheetsSource. CredentialsFile (a service
// account key) takes precedence over APIKey.
type SheetsOptions struct {
	SheetID         string
	Range           string
	APIKey          string
	CredentialsFile string
	// ClientOptions are appended after the credentials, e.g. an endpoint override
	ClientOptions []option.ClientOption
}

// SheetsSource reads the dataset through the Google Sheets API
type SheetsSource struct {
	service *sheets.Service
	sheetID string
	rng     string
	logger  *slog.Logger
}

// NewSheetsSource creates a Sheets API client
func NewSheetsSource(ctx context.Context, opts SheetsOptions, logger *slog.Logger) (*SheetsSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var clientOpts []option.ClientOption
	switch {
	case opts.CredentialsFile != "":
		credentialsJSON, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentialsJSON(credentialsJSON))
	case opts.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	rng := opts.Range
	if rng == "" {
		rng = "A:Z"
	}

	return &SheetsSource{
		service: service,
		sheetID: opts.SheetID,
		rng:     rng,
		logger:  logger.With(slog.String("component", "sheets_source")),
	}, nil
}

// Name implements Source
func (s *SheetsSource) Name() string { return "sheets" }

// Fetch implements Source. The first row of the range is the header.
func (s *SheetsSource) Fetch(ctx context.Context) ([]domain.RawRow, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.sheetID, s.rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read from sheets: %v", ErrSourceUnavailable, err)
	}

	rows, header, err := RowsFromValues(resp.Values)
	if err != nil {
		return nil, err
	}
	warnMissingColumns(s.logger, header)

	s.logger.Info("fetched dataset",
		slog.String("sheet_id", s.sheetID),
		slog.String("range", s.rng),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// RowsFromValues converts a Sheets value range into raw rows
func RowsFromValues(values [][]interface{}) ([]domain.RawRow, []string, error) {
	if len(values) == 0 {
		return nil, nil, fmt.Errorf("%w: no header row", ErrInvalidDataset)
	}

	table := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		table[i] = cells
	}

	header := cleanHeader(table[0])
	return rowsFromTable(header, table[1:]), header, nil
}
