package services

import (
	"context"
	"log/slog"
	"strconv"

	"salespulse/internal/chart"
	"salespulse/internal/config"
	"salespulse/internal/dataprocessing"
)

// Mount points of the dashboard page
const (
	ChartItemRevenue       = "chart1"
	ChartGroupRevenue      = "chart2"
	ChartMonthRevenue      = "chart3"
	ChartWeekdayAverage    = "chart4"
	ChartDayOfMonthAverage = "chart5"
	ChartHourAverage       = "chart6"
	ChartGroupProbability  = "chart7"
	ChartGroupMonthShare   = "chart8"
	ChartGroupItemShare    = "chart9"
	ChartGroupMonthItems   = "chart10"
	ChartPurchaseFrequency = "chart11"
)

// Layout holds the chart sizes of the dashboard
type Layout struct {
	Width       float64
	Height      float64
	GroupWidth  float64
	GroupHeight float64
}

// LayoutFromConfig reads chart sizes from the render settings, falling back to
// the defaults for unset values
func LayoutFromConfig(cfg config.RenderConfig) Layout {
	l := Layout{
		Width:       cfg.Width,
		Height:      cfg.Height,
		GroupWidth:  cfg.GroupWidth,
		GroupHeight: cfg.GroupHeight,
	}
	if l.Width <= 0 {
		l.Width = config.ChartWidth
	}
	if l.Height <= 0 {
		l.Height = config.ChartHeight
	}
	if l.GroupWidth <= 0 {
		l.GroupWidth = config.GroupChartWidth
	}
	if l.GroupHeight <= 0 {
		l.GroupHeight = config.GroupChartHeight
	}
	return l
}

// Render draws every aggregate of report onto a fresh board. Per-group charts
// get their own mount point allocated under the chart9 and chart10
// containers.
func (s *ReportService) Render(ctx context.Context, report *dataprocessing.Report) (*chart.Board, error) {
	board := chart.NewBoard()
	l := s.layout

	bar := func(id, title, labelName string, orientation chart.Orientation, data chart.BarData) {
		chart.DrawBar(board.Mount(id, title), data, chart.BarOptions{
			Orientation: orientation,
			Width:       l.Width,
			Height:      l.Height,
			LabelName:   labelName,
		})
	}

	bar(ChartItemRevenue, "Revenue by item", "item", chart.Horizontal, itemRevenueBars(report))
	bar(ChartGroupRevenue, "Revenue by group", "group", chart.Horizontal, groupRevenueBars(report))
	bar(ChartMonthRevenue, "Revenue by month", "month", chart.Vertical, monthRevenueBars(report))
	bar(ChartWeekdayAverage, "Average revenue by weekday", "day", chart.Vertical, weekdayBars(report))
	bar(ChartDayOfMonthAverage, "Average revenue by day of month", "day", chart.Vertical, dayOfMonthBars(report))
	bar(ChartHourAverage, "Average revenue by hour", "hour", chart.Vertical, hourBars(report))
	bar(ChartGroupProbability, "Order probability by group", "group", chart.Horizontal, groupProbabilityBars(report))

	chart.DrawLine(board.Mount(ChartGroupMonthShare, "Monthly order share by group"),
		groupMonthShareLines(report),
		chart.LineOptions{Width: l.Width, Height: l.Height})

	board.Mount(ChartGroupItemShare, "Item share within group")
	for _, g := range report.GroupItemShare {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(g.Items) == 0 {
			s.logger.WarnContext(ctx, "group has no items, skipping chart",
				slog.String("group", g.Group),
				slog.String("container", ChartGroupItemShare))
			continue
		}
		t, err := board.Allocate(ChartGroupItemShare, g.Group, l.GroupWidth, l.GroupHeight)
		if err != nil {
			return nil, err
		}
		bars := make([]chart.Bar, 0, len(g.Items))
		for _, item := range g.Items {
			bars = append(bars, chart.Bar{Label: item.Item, Value: item.Probability})
		}
		chart.DrawBar(t, chart.Probability(bars), chart.BarOptions{Orientation: chart.Horizontal, LabelName: "item"})
	}

	board.Mount(ChartGroupMonthItems, "Monthly item share within group")
	for _, g := range report.GroupMonthItemShare {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(g.Shares) == 0 {
			s.logger.WarnContext(ctx, "group has no dated items, skipping chart",
				slog.String("group", g.Group),
				slog.String("container", ChartGroupMonthItems))
			continue
		}
		t, err := board.Allocate(ChartGroupMonthItems, g.Group, l.GroupWidth, l.GroupHeight)
		if err != nil {
			return nil, err
		}
		rows := make([]seriesPoint, 0, len(g.Shares))
		for _, share := range g.Shares {
			rows = append(rows, seriesPoint{series: share.Item, month: share.Month, value: share.Probability})
		}
		chart.DrawLine(t, monthLines(rows), chart.LineOptions{})
	}

	bar(ChartPurchaseFrequency, "Purchase frequency", "Lượt mua", chart.Vertical, purchaseFrequencyBars(report))

	return board, nil
}

func itemRevenueBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.ItemRevenue))
	for _, v := range r.ItemRevenue {
		bars = append(bars, chart.Bar{Label: v.Item, Value: v.Revenue})
	}
	return chart.Revenue(bars)
}

func groupRevenueBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.GroupRevenue))
	for _, v := range r.GroupRevenue {
		bars = append(bars, chart.Bar{Label: v.Group, Value: v.Revenue})
	}
	return chart.Revenue(bars)
}

func monthRevenueBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.MonthRevenue))
	for _, v := range r.MonthRevenue {
		bars = append(bars, chart.Bar{Label: dataprocessing.MonthLabel(v.Month), Value: v.Revenue})
	}
	return chart.Revenue(bars)
}

func weekdayBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.WeekdayAverage))
	for _, v := range r.WeekdayAverage {
		bars = append(bars, chart.Bar{Label: v.Day, Value: v.Revenue})
	}
	return chart.Revenue(bars)
}

func dayOfMonthBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.DayOfMonthAverage))
	for _, v := range r.DayOfMonthAverage {
		bars = append(bars, chart.Bar{Label: strconv.Itoa(v.Day), Value: v.Revenue})
	}
	return chart.Revenue(bars)
}

func hourBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.HourAverage))
	for _, v := range r.HourAverage {
		bars = append(bars, chart.Bar{Label: v.Label, Value: v.Revenue})
	}
	return chart.Revenue(bars)
}

func groupProbabilityBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.GroupOrderProbability))
	for _, v := range r.GroupOrderProbability {
		bars = append(bars, chart.Bar{Label: v.Group, Value: v.Probability})
	}
	return chart.Probability(bars)
}

func purchaseFrequencyBars(r *dataprocessing.Report) chart.BarData {
	bars := make([]chart.Bar, 0, len(r.PurchaseFrequency))
	for _, v := range r.PurchaseFrequency {
		bars = append(bars, chart.Bar{Label: strconv.Itoa(v.Purchases), Value: float64(v.Customers)})
	}
	return chart.Revenue(bars)
}

func groupMonthShareLines(r *dataprocessing.Report) chart.LineData {
	rows := make([]seriesPoint, 0, len(r.GroupMonthShare))
	for _, v := range r.GroupMonthShare {
		rows = append(rows, seriesPoint{series: v.Group, month: v.Month, value: v.Probability})
	}
	return monthLines(rows)
}

type seriesPoint struct {
	series string
	month  int
	value  float64
}

// monthLines groups month-sorted rows into one series per name, in order of
// first appearance, over the shared month domain
func monthLines(rows []seriesPoint) chart.LineData {
	data := chart.LineData{Kind: chart.KindProbability}
	index := make(map[string]int)
	seenMonth := make(map[int]bool)

	for _, row := range rows {
		label := dataprocessing.MonthLabel(row.month)
		if !seenMonth[row.month] {
			seenMonth[row.month] = true
			data.Domain = append(data.Domain, label)
		}
		i, ok := index[row.series]
		if !ok {
			i = len(data.Series)
			index[row.series] = i
			data.Series = append(data.Series, chart.LineSeries{Name: row.series})
		}
		data.Series[i].Points = append(data.Series[i].Points, chart.Point{X: label, Y: row.value})
	}
	return data
}

func drawnTargets(board *chart.Board) int {
	n := 0
	for _, t := range board.All() {
		if !t.Empty() {
			n++
		}
	}
	return n
}
