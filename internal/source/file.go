package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"salespulse/pkg/contracts/domain"
)

// FileSource reads a local CSV or Excel export
type FileSource struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewFileSource creates a file source. sheet selects the worksheet of an
// Excel file; empty means the first one.
func NewFileSource(path, sheet string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		sheet:  sheet,
		logger: logger.With(slog.String("component", "file_source")),
	}
}

// Name implements Source
func (s *FileSource) Name() string { return "file" }

// Fetch implements Source
func (s *FileSource) Fetch(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows   []domain.RawRow
		header []string
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".csv":
		rows, header, err = s.readCSV()
	case ".xlsx", ".xlsm":
		rows, header, err = s.readExcel()
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidDataset, ext)
	}
	if err != nil {
		return nil, err
	}
	warnMissingColumns(s.logger, header)

	s.logger.Info("loaded dataset",
		slog.String("path", s.path),
		slog.Int("rows", len(rows)))
	return rows, nil
}

func (s *FileSource) readCSV() ([]domain.RawRow, []string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

func (s *FileSource) readExcel() ([]domain.RawRow, []string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidDataset)
		}
		sheet = sheets[0]
	}

	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if len(table) == 0 {
		return nil, nil, fmt.Errorf("%w: no header row", ErrInvalidDataset)
	}

	header := cleanHeader(table[0])
	return rowsFromTable(header, table[1:]), header, nil
}
