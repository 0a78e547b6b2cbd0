// Package source retrieves the raw sales rows from a published CSV export,
// the Google Sheets API, or a local CSV/Excel file. Every source returns the
// rows keyed by their header and never interprets cell values.
package source
