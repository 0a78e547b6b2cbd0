package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespulse/internal/dataprocessing"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/source"
)

func newReportRoutes(t *testing.T, provider DashboardProvider, bom bool) *ReportHandler {
	t.Helper()
	eh, _ := newErrorHandler(t)
	return NewReportHandler(provider, bom, testLogger(t), eh)
}

func decode(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestGetReport(t *testing.T) {
	h := newReportRoutes(t, &stubProvider{dashboard: fixtureDashboard(t)}, false)

	rec := serve(t, "/api/report", h.Routes(), http.MethodGet, "/api/report")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec.Body.Bytes())
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "fixture", body["source"])

	data := body["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, 6.0, summary["records"])
	assert.Len(t, data["item_revenue"], 3)
}

func TestListTables(t *testing.T) {
	h := newReportRoutes(t, &stubProvider{dashboard: fixtureDashboard(t)}, false)

	rec := serve(t, "/api/report", h.Routes(), http.MethodGet, "/api/report/tables")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data  []TableInfo `json:"data"`
		Count int         `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, len(dataprocessing.TableNames), body.Count)
	assert.Equal(t, dataprocessing.TableItemRevenue, body.Data[0].Name)
	assert.Equal(t, 3, body.Data[0].Rows)
}

func TestGetTable(t *testing.T) {
	dashboard := fixtureDashboard(t)

	tests := []struct {
		name       string
		target     string
		bom        bool
		wantStatus int
		check      func(t *testing.T, rec []byte, header http.Header)
	}{
		{
			name:       "json",
			target:     "/api/report/tables/group_revenue",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte, _ http.Header) {
				var resp struct {
					Data dataprocessing.Table `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, []string{"group", "revenue"}, resp.Data.Headers)
				assert.Equal(t, [][]string{{"G1 - Fruit", "380"}, {"G2 - Veg", "20"}}, resp.Data.Rows)
			},
		},
		{
			name:       "csv",
			target:     "/api/report/tables/group_revenue?format=csv",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte, header http.Header) {
				assert.Equal(t, "text/csv; charset=utf-8", header.Get("Content-Type"))
				assert.Contains(t, header.Get("Content-Disposition"), `filename="group_revenue.csv"`)
				records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
				require.NoError(t, err)
				assert.Equal(t, [][]string{{"group", "revenue"}, {"G1 - Fruit", "380"}, {"G2 - Veg", "20"}}, records)
			},
		},
		{
			name:       "csv with bom",
			target:     "/api/report/tables/month_revenue?format=csv",
			bom:        true,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte, _ http.Header) {
				assert.True(t, strings.HasPrefix(string(body), "\ufeffmonth,revenue"))
			},
		},
		{
			name:       "invalid format",
			target:     "/api/report/tables/group_revenue?format=pdf",
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte, _ http.Header) {
				problem := decode(t, body)
				assert.Equal(t, apierrors.TypeValidation, problem["type"])
				assert.Equal(t, "VALIDATION_FAILED", problem["error_code"])
				details := problem["details"].([]interface{})
				require.Len(t, details, 1)
				assert.Equal(t, "format", details[0].(map[string]interface{})["field"])
			},
		},
		{
			name:       "unknown table",
			target:     "/api/report/tables/nope",
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, body []byte, _ http.Header) {
				problem := decode(t, body)
				assert.Equal(t, apierrors.TypeTableNotFound, problem["type"])
				assert.Len(t, problem["tables"], len(dataprocessing.TableNames))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newReportRoutes(t, &stubProvider{dashboard: dashboard}, tt.bom)

			rec := serve(t, "/api/report", h.Routes(), http.MethodGet, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.check(t, rec.Body.Bytes(), rec.Header())
		})
	}
}

func TestExportWorkbook(t *testing.T) {
	h := newReportRoutes(t, &stubProvider{dashboard: fixtureDashboard(t)}, false)

	rec := serve(t, "/api/report", h.Routes(), http.MethodGet, "/api/report/export.xlsx")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), len(dataprocessing.TableNames))
}

func TestRefresh(t *testing.T) {
	provider := &stubProvider{dashboard: fixtureDashboard(t)}
	h := newReportRoutes(t, provider, false)

	rec := serve(t, "/api/report", h.Routes(), http.MethodPost, "/api/report/refresh")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, provider.refreshes)
	body := decode(t, rec.Body.Bytes())
	assert.Equal(t, 6.0, body["records"])
	assert.Equal(t, 15.0, body["charts"])
}

func TestReportSourceErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantType   string
	}{
		{fmt.Errorf("fetch: %w", source.ErrSourceUnavailable), http.StatusBadGateway, apierrors.TypeSourceUnavailable},
		{fmt.Errorf("fetch: %w", source.ErrInvalidDataset), http.StatusUnprocessableEntity, apierrors.TypeDataInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			h := newReportRoutes(t, &stubProvider{err: tt.err}, false)

			rec := serve(t, "/api/report", h.Routes(), http.MethodGet, "/api/report")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, decode(t, rec.Body.Bytes())["type"])
		})
	}
}
