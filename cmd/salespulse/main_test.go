package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespulse/internal/chart"
	"salespulse/internal/dataprocessing"
	"salespulse/internal/exporter"
	"salespulse/internal/shared/testutil"
)

const testConfigYAML = `
logging:
  level: error
  output: console
render:
  timezone: UTC
  csv_with_bom: false
telemetry:
  metrics_enabled: false
`

// setup writes the sales fixture and a config file into a temp dir
func setup(t *testing.T) (dir, configPath, dataPath string) {
	t.Helper()
	dir = t.TempDir()

	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfigYAML), 0644))

	dataPath = filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(testutil.SalesCSV), 0644))
	return dir, configPath, dataPath
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestRenderCommand(t *testing.T) {
	dir, configPath, dataPath := setup(t)
	out := filepath.Join(dir, "site")

	require.NoError(t, execute(t, "render", "--config", configPath, "--file", dataPath, "--out", out))

	page, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `id="chart1"`)

	assert.FileExists(t, filepath.Join(out, "svg", "chart1.svg"))
	assert.FileExists(t, filepath.Join(out, "svg", "chart11.svg"))
	assert.NoFileExists(t, filepath.Join(out, "svg", "chart9.svg"), "containers have no scene")

	for _, name := range dataprocessing.TableNames {
		assert.FileExists(t, filepath.Join(out, "tables", name+".csv"))
	}
}

func TestExportCommand(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{
			format: "csv",
			check: func(t *testing.T, out string) {
				data, err := os.ReadFile(filepath.Join(out, dataprocessing.TableGroupRevenue+".csv"))
				require.NoError(t, err)
				assert.Equal(t, "group,revenue\nG1 - Fruit,380\nG2 - Veg,20\n", string(data))
			},
		},
		{
			format: "xlsx",
			check: func(t *testing.T, out string) {
				f, err := excelize.OpenFile(filepath.Join(out, "salespulse.xlsx"))
				require.NoError(t, err)
				defer f.Close()
				assert.Len(t, f.GetSheetList(), len(dataprocessing.TableNames))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir, configPath, dataPath := setup(t)
			out := filepath.Join(dir, "export")

			require.NoError(t, execute(t, "export", "--config", configPath, "--file", dataPath, "--format", tt.format, "--out", out))
			tt.check(t, out)
		})
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	err := execute(t, "export", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestRenderMissingFile(t *testing.T) {
	dir, configPath, _ := setup(t)

	err := execute(t, "render", "--config", configPath, "--file", filepath.Join(dir, "missing.csv"), "--out", dir)
	assert.Error(t, err)
}

// closeFailer buffers writes and fails on Close like a file whose final flush
// is rejected
type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestWritePageReportsCloseError(t *testing.T) {
	page := &closeFailer{}

	err := writePage(page, exporter.NewHTMLRenderer("Sales Pulse"), chart.NewBoard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, page.closed)
	assert.Contains(t, page.String(), "Sales Pulse")
}
