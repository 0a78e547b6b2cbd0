package exporter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"salespulse/internal/chart"
)

// sampleBoard draws one bar chart, one line chart and one per-group child,
// and leaves a fourth target empty
func sampleBoard(t *testing.T) *chart.Board {
	t.Helper()
	b := chart.NewBoard()

	chart.DrawBar(b.Mount("chart1", "Revenue by item"), chart.Revenue([]chart.Bar{
		{Label: "A - Apple", Value: 300},
		{Label: "B - Banana", Value: 80},
	}), chart.BarOptions{Orientation: chart.Horizontal})

	chart.DrawLine(b.Mount("chart8", "Monthly order share"), chart.LineData{
		Kind: chart.KindProbability,
		Series: []chart.LineSeries{
			{Name: "[G1] Fruit", Points: []chart.Point{{X: "T1", Y: 1}, {X: "T2", Y: 0.5}}},
			{Name: "[G2] Veg", Points: []chart.Point{{X: "T2", Y: 0.5}}},
		},
	}, chart.LineOptions{})

	b.Mount("chart9", "Item share")
	child, err := b.Allocate("chart9", "G1 - Fruit", 600, 300)
	require.NoError(t, err)
	chart.DrawBar(child, chart.Probability([]chart.Bar{{Label: "A - Apple", Value: 0.5}}),
		chart.BarOptions{Orientation: chart.Horizontal})

	b.Mount("chart11", "Purchase frequency")
	return b
}
