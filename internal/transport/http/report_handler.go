package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"salespulse/internal/dataprocessing"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/exporter"
	customMiddleware "salespulse/internal/middleware"
	"salespulse/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the aggregates of the current dashboard
type ReportHandler struct {
	service      DashboardProvider
	binder       *customMiddleware.QueryBinder
	csvBOM       bool
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// TableQuery holds the query parameters of GET /tables/{name}
type TableQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=json csv"`
}

// TableInfo describes one available table
type TableInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Rows  int    `json:"rows"`
}

// NewReportHandler creates a report handler. csvBOM prefixes CSV downloads
// with a UTF-8 byte order mark.
func NewReportHandler(service DashboardProvider, csvBOM bool, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		binder:       customMiddleware.NewQueryBinder(),
		csvBOM:       csvBOM,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetReport)
	r.Get("/tables", h.ListTables)
	r.Get("/tables/{name}", h.GetTable)
	r.Get("/export.xlsx", h.ExportWorkbook)
	r.Post("/refresh", h.Refresh)

	return r
}

// GetReport handles GET /api/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":       "success",
		"source":       dashboard.Source,
		"generated_at": dashboard.GeneratedAt,
		"data":         dashboard.Report,
	})
}

// ListTables handles GET /api/report/tables
func (h *ReportHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	tables := dashboard.Report.Tables()
	infos := make([]TableInfo, 0, len(tables))
	for _, t := range tables {
		infos = append(infos, TableInfo{Name: t.Name, Title: t.Title, Rows: len(t.Rows)})
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   infos,
		"count":  len(infos),
	})
}

// GetTable handles GET /api/report/tables/{name}
func (h *ReportHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	var query TableQuery
	if err := h.binder.Bind(r, &query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	table, err := dashboard.Report.Table(chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if query.Format == "csv" {
		h.writeCSV(w, r, table)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   table,
	})
}

func (h *ReportHandler) writeCSV(w http.ResponseWriter, r *http.Request, table dataprocessing.Table) {
	var buf bytes.Buffer
	err := exporter.Encode(&buf, exporter.WriteOptions{
		Headers:   table.Headers,
		Records:   table.Rows,
		BOMPrefix: h.csvBOM,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table.Name+".csv"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ExportWorkbook handles GET /api/report/export.xlsx
func (h *ReportHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteWorkbook(&buf, dashboard.Report.Tables()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("salespulse-%s.xlsx", dashboard.GeneratedAt.Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Refresh handles POST /api/report/refresh
func (h *ReportHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "refreshing dashboard",
		slog.String("request_id", middleware.GetReqID(r.Context())))

	dashboard, err := h.service.Refresh(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, refreshResponse(dashboard))
}

func refreshResponse(d *services.Dashboard) map[string]interface{} {
	return map[string]interface{}{
		"status":       "success",
		"source":       d.Source,
		"generated_at": d.GeneratedAt,
		"duration_ms":  d.Duration.Milliseconds(),
		"records":      d.Report.Summary.Records,
		"charts":       len(d.Board.All()),
	}
}
