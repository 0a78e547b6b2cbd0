package http

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salespulse/internal/chart"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/exporter"
)

// ChartHandler serves the mount points of the current dashboard
type ChartHandler struct {
	service      DashboardProvider
	svg          *exporter.SVGRenderer
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// ChartInfo describes one mount point
type ChartInfo struct {
	ID       string          `json:"id"`
	Parent   string          `json:"parent,omitempty"`
	Title    string          `json:"title"`
	Kind     chart.SceneKind `json:"kind,omitempty"`
	Empty    bool            `json:"empty"`
	Children []string        `json:"children,omitempty"`
	SVG      string          `json:"svg,omitempty"`
}

// NewChartHandler creates a chart handler
func NewChartHandler(service DashboardProvider, svg *exporter.SVGRenderer, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		svg:          svg,
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCharts)
	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.TargetCtx)
		r.Get("/", h.GetChart)
		r.Get("/svg", h.GetChartSVG)
	})

	return r
}

type targetKey struct{}

// TargetCtx resolves the {id} parameter to a mount point of the current
// dashboard
func (h *ChartHandler) TargetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := h.service.Dashboard(r.Context())
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}

		id := chi.URLParam(r, "id")
		target, ok := dashboard.Board.Lookup(id)
		if !ok {
			h.errorHandler.HandleError(w, r, fmt.Errorf("%w: %s", chart.ErrUnknownTarget, id))
			return
		}

		next.ServeHTTP(w, r.WithContext(withTarget(r, target)))
	})
}

// ListCharts handles GET /api/charts
func (h *ChartHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	board := dashboard.Board
	all := board.All()
	infos := make([]ChartInfo, 0, len(all))
	for _, t := range all {
		info := ChartInfo{
			ID:     t.ID,
			Parent: t.Parent,
			Title:  t.Title,
			Empty:  t.Empty(),
		}
		if scene := t.Scene(); scene != nil {
			info.Kind = scene.Kind
			info.SVG = "/api/charts/" + t.ID + "/svg"
		}
		for _, child := range board.Children(t.ID) {
			info.Children = append(info.Children, child.ID)
		}
		infos = append(infos, info)
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   infos,
		"count":  len(infos),
	})
}

// GetChart handles GET /api/charts/{id}
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	target := targetFrom(r)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"id":     target.ID,
			"parent": target.Parent,
			"title":  target.Title,
			"scene":  target.Scene(),
		},
	})
}

// GetChartSVG handles GET /api/charts/{id}/svg
func (h *ChartHandler) GetChartSVG(w http.ResponseWriter, r *http.Request) {
	target := targetFrom(r)

	var buf bytes.Buffer
	if err := h.svg.Render(&buf, target); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func withTarget(r *http.Request, t *chart.Target) context.Context {
	return context.WithValue(r.Context(), targetKey{}, t)
}

func targetFrom(r *http.Request) *chart.Target {
	t, _ := r.Context().Value(targetKey{}).(*chart.Target)
	return t
}
