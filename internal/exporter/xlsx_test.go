package exporter

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespulse/internal/dataprocessing"
)

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(sampleTables())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"item_revenue", "purchase_frequency"}, f.GetSheetList())

	rows, err := f.GetRows("item_revenue")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"item", "revenue"},
		{"A01 - Cà phê", "300"},
		{"B02 - Trà", "50.5"},
	}, rows)

	cellType, err := f.GetCellType("item_revenue", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "numbers are stored as numbers")
}

func TestSaveWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, SaveWorkbook(path, sampleTables()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("purchase_frequency", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", value)
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, sampleTables()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 2)
}

func TestSheetNameTruncated(t *testing.T) {
	long := strings.Repeat("x", 40)
	assert.Len(t, sheetName(long), 31)
	assert.Equal(t, dataprocessing.TableHourAverage, sheetName(dataprocessing.TableHourAverage))
}
