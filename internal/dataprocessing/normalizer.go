package dataprocessing

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"salespulse/pkg/contracts/domain"
)

// timestampLayouts are tried in order; the first that parses wins.
// Slash dates follow the US month/day order of the spreadsheet export.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// Normalizer turns raw spreadsheet rows into typed records in a single pass
type Normalizer struct {
	location *time.Location
	locale   Locale
	logger   *slog.Logger
}

// NewNormalizer creates a normalizer. A nil location means time.Local.
func NewNormalizer(location *time.Location, locale Locale, logger *slog.Logger) *Normalizer {
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		location: location,
		locale:   locale,
		logger:   logger.With(slog.String("component", "normalizer")),
	}
}

// Normalize converts every row. No row is dropped: invalid timestamps and
// amounts are carried as zero time and NaN respectively.
func (n *Normalizer) Normalize(rows []domain.RawRow) []domain.Record {
	records := make([]domain.Record, 0, len(rows))
	invalidTimestamps, invalidAmounts := 0, 0

	for _, row := range rows {
		rec := n.NormalizeRow(row)
		if !rec.HasTimestamp() {
			invalidTimestamps++
		}
		if !rec.HasAmount() {
			invalidAmounts++
		}
		records = append(records, rec)
	}

	n.logger.Info("normalized dataset",
		slog.Int("rows", len(rows)),
		slog.Int("invalid_timestamps", invalidTimestamps),
		slog.Int("invalid_amounts", invalidAmounts))

	return records
}

// NormalizeRow converts one row and computes every derived field
func (n *Normalizer) NormalizeRow(row domain.RawRow) domain.Record {
	field := func(col string) string {
		return strings.TrimSpace(row[col])
	}

	rec := domain.Record{
		OrderID:    field(domain.ColumnOrderID),
		CustomerID: field(domain.ColumnCustomerID),
		ItemCode:   field(domain.ColumnItemCode),
		ItemName:   field(domain.ColumnItemName),
		GroupCode:  field(domain.ColumnGroupCode),
		GroupName:  field(domain.ColumnGroupName),
	}
	rec.GroupLabel = domain.FormatGroupLabel(rec.GroupCode, rec.GroupName)

	if raw, ok := row[domain.ColumnAmount]; ok {
		rec.Amount = ParseAmount(raw)
	} else {
		rec.Amount = math.NaN()
	}

	if ts, ok := ParseTimestamp(field(domain.ColumnCreatedAt), n.location); ok {
		rec.CreatedAt = ts
		rec.Month = int(ts.Month())
		rec.Weekday = ts.Weekday()
		rec.WeekdayLabel = n.locale.WeekdayLabel(ts.Weekday())
		rec.Date = ts.Format("2006-01-02")
		rec.Day = ts.Day()
		rec.Hour = ts.Hour()
	}

	return rec
}

// ParseTimestamp parses a spreadsheet date-time string in loc
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a monetary amount. Blank is zero; anything
// unparseable, including infinities, is NaN.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
