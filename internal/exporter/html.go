package exporter

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"salespulse/internal/chart"
)

const percentFormatter = "function (value) { return Math.round(value * 100) + '%'; }"

// HTMLRenderer renders a whole board as one interactive echarts page
type HTMLRenderer struct {
	pageTitle string
}

// NewHTMLRenderer creates a renderer titling the page pageTitle
func NewHTMLRenderer(pageTitle string) *HTMLRenderer {
	return &HTMLRenderer{pageTitle: pageTitle}
}

// Render writes the dashboard page. Charts appear in board order under
// chartID of their mount point; empty targets are skipped.
func (r *HTMLRenderer) Render(w io.Writer, board *chart.Board) error {
	page := components.NewPage()
	page.PageTitle = r.pageTitle

	for _, t := range board.All() {
		if c := r.Chart(t); c != nil {
			page.AddCharts(c)
		}
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

// Chart converts the scene of t, nil when nothing is drawn
func (r *HTMLRenderer) Chart(t *chart.Target) components.Charter {
	scene := t.Scene()
	if scene == nil {
		return nil
	}
	switch scene.Kind {
	case chart.SceneBar:
		return barChart(t.ID, scene)
	case chart.SceneLine:
		return lineChart(t.ID, scene)
	}
	return nil
}

// chartID maps a mount point id to the echarts chart id. echarts declares
// JS variables named after it, so hyphens from allocated ids become
// underscores.
func chartID(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

func initOpts(id string, scene *chart.Scene) opts.Initialization {
	return opts.Initialization{
		ChartID: chartID(id),
		Width:   fmt.Sprintf("%.0fpx", scene.Width),
		Height:  fmt.Sprintf("%.0fpx", scene.Height),
	}
}

func valueLabel(kind chart.Kind) *opts.AxisLabel {
	if kind == chart.KindProbability {
		return &opts.AxisLabel{Formatter: string(opts.FuncOpts(percentFormatter))}
	}
	return &opts.AxisLabel{}
}

func barChart(id string, scene *chart.Scene) *charts.Bar {
	data := make([]opts.BarData, len(scene.Values))
	for i, v := range scene.Values {
		item := opts.BarData{Value: jsonSafe(v)}
		if i < len(scene.Colors) {
			item.ItemStyle = &opts.ItemStyle{Color: scene.Colors[i]}
		}
		data[i] = item
	}

	horizontal := scene.Orientation == chart.Horizontal
	var xAxis opts.XAxis
	var yAxis opts.YAxis
	if horizontal {
		// After XYReversal the x axis carries the values
		xAxis.AxisLabel = valueLabel(scene.ValueKind)
	} else {
		xAxis.AxisLabel = &opts.AxisLabel{Rotate: 45}
		yAxis.AxisLabel = valueLabel(scene.ValueKind)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(id, scene)),
		charts.WithTitleOpts(opts.Title{Title: scene.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithGridOpts(opts.Grid{
			Left:   fmt.Sprintf("%.0f", chart.BarMargins.Left),
			Bottom: fmt.Sprintf("%.0f", chart.BarMargins.Bottom),
		}),
	)

	categories := scene.Categories
	if horizontal {
		// echarts stacks a category y axis bottom up
		categories = reversed(categories)
		data = reversed(data)
	}
	bar.SetXAxis(categories).AddSeries(seriesName(scene), data)
	if horizontal {
		bar.XYReversal()
	}
	return bar
}

func lineChart(id string, scene *chart.Scene) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(id, scene)),
		charts.WithTitleOpts(opts.Title{Title: scene.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "vertical", Right: "0", Top: "middle"}),
		charts.WithYAxisOpts(opts.YAxis{AxisLabel: valueLabel(scene.ValueKind)}),
		charts.WithGridOpts(opts.Grid{
			Left:  fmt.Sprintf("%.0f", chart.LineMargins.Left),
			Right: fmt.Sprintf("%.0f", chart.LineMargins.Right),
		}),
	)

	line.SetXAxis(scene.Domain)
	for _, s := range scene.Series {
		values := make(map[string]float64, len(s.X))
		for i, x := range s.X {
			values[x] = s.Y[i]
		}
		// Align to the shared domain; gaps stay empty
		data := make([]opts.LineData, len(scene.Domain))
		for i, x := range scene.Domain {
			if v, ok := values[x]; ok {
				data[i] = opts.LineData{Value: jsonSafe(v)}
			} else {
				data[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false), ConnectNulls: opts.Bool(true)}),
	)
	return line
}

func seriesName(scene *chart.Scene) string {
	if scene.LabelName != "" {
		return scene.LabelName
	}
	return string(scene.ValueKind)
}

// jsonSafe maps NaN and infinities, which JSON cannot carry, to nil
func jsonSafe(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
