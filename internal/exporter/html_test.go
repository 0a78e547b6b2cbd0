package exporter

import (
	"bytes"
	"math"
	"regexp"
	"testing"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/chart"
)

func TestHTMLRender(t *testing.T) {
	b := sampleBoard(t)

	var buf bytes.Buffer
	require.NoError(t, NewHTMLRenderer("Sales Pulse").Render(&buf, b))

	page := buf.String()
	assert.Contains(t, page, "Sales Pulse")
	assert.Contains(t, page, "chart1")
	assert.Contains(t, page, "chart8")
	assert.Contains(t, page, "Revenue by item")
	assert.NotContains(t, page, "Purchase frequency", "empty targets are not rendered")
}

var jsChartVar = regexp.MustCompile(`let (?:goecharts|option)_(\S+) =`)

func TestHTMLAllocatedChartsUseIdentifierIDs(t *testing.T) {
	b := chart.NewBoard()
	b.Mount("chart9", "Item share")
	child, err := b.Allocate("chart9", "[G1] Fruit", 600, 300)
	require.NoError(t, err)
	require.Contains(t, child.ID, "-")
	chart.DrawBar(child, chart.Probability([]chart.Bar{
		{Label: "A - Apple", Value: 0.75},
		{Label: "B - Banana", Value: 0.25},
	}), chart.BarOptions{Orientation: chart.Horizontal})

	var buf bytes.Buffer
	require.NoError(t, NewHTMLRenderer("Sales Pulse").Render(&buf, b))
	page := buf.String()

	vars := jsChartVar.FindAllStringSubmatch(page, -1)
	require.Len(t, vars, 2, "one echarts instance and one option per drawn chart")
	for _, m := range vars {
		assert.Regexp(t, `^[A-Za-z_][A-Za-z0-9_]*$`, m[1])
		assert.Equal(t, chartID(child.ID), m[1])
	}
	assert.Contains(t, page, `id="`+chartID(child.ID)+`"`)
	assert.NotContains(t, page, "goecharts_"+child.ID+" ")
}

func TestChartID(t *testing.T) {
	assert.Equal(t, "chart1", chartID("chart1"))
	assert.Equal(t, "chart_G1Fruit_12a02911", chartID("chart-G1Fruit-12a02911"))
}

func TestHTMLChartKinds(t *testing.T) {
	b := sampleBoard(t)
	r := NewHTMLRenderer("")

	bar, _ := b.Lookup("chart1")
	_, ok := r.Chart(bar).(*charts.Bar)
	assert.True(t, ok)

	line, _ := b.Lookup("chart8")
	_, ok = r.Chart(line).(*charts.Line)
	assert.True(t, ok)

	empty, _ := b.Lookup("chart11")
	assert.Nil(t, r.Chart(empty))
}

func TestLineChartAlignsSeriesToDomain(t *testing.T) {
	b := chart.NewBoard()
	target := b.Mount("chart8", "Monthly order share")
	chart.DrawLine(target, chart.LineData{
		Kind: chart.KindProbability,
		Series: []chart.LineSeries{
			{Name: "a", Points: []chart.Point{{X: "T1", Y: 1}, {X: "T3", Y: 0.25}}},
			{Name: "b", Points: []chart.Point{{X: "T2", Y: 0.5}}},
		},
	}, chart.LineOptions{})

	line := lineChart(target.ID, target.Scene())

	require.Len(t, line.MultiSeries, 2)
	first, ok := line.MultiSeries[0].Data.([]opts.LineData)
	require.True(t, ok)
	require.Len(t, first, 3)
	assert.Equal(t, 1.0, first[0].Value)
	assert.Nil(t, first[1].Value)
	assert.Equal(t, 0.25, first[2].Value)
}

func TestReversed(t *testing.T) {
	assert.Equal(t, []string{"c", "b", "a"}, reversed([]string{"a", "b", "c"}))
	assert.Empty(t, reversed([]int{}))
}

func TestJSONSafe(t *testing.T) {
	assert.Equal(t, 2.5, jsonSafe(2.5))
	assert.Nil(t, jsonSafe(math.NaN()))
	assert.Nil(t, jsonSafe(math.Inf(1)))
}
