package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"unit interval", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"revenue", 0, 350, 5, []float64{0, 50, 100, 150, 200, 250, 300, 350}},
		{"headroom", 0, 0.55, 5, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5}},
		{"ten ticks", 0, 1000, 10, []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}},
		{"degenerate", 3, 3, 5, []float64{3}},
		{"no ticks requested", 0, 1, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.start, tt.stop, tt.count)
			require.Len(t, got, len(tt.want))
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
		})
	}
}

func TestLinear(t *testing.T) {
	s := NewLinear(0, 200, 250, 750)

	assert.Equal(t, 250.0, s.Map(0))
	assert.Equal(t, 500.0, s.Map(100))
	assert.Equal(t, 750.0, s.Map(200))
	assert.Equal(t, 50.0, s.TickStep(5))

	inverted := NewLinear(0, 1, 480, 20)
	assert.Equal(t, 480.0, inverted.Map(0))
	assert.Equal(t, 20.0, inverted.Map(1))
}

func TestBand(t *testing.T) {
	b := NewBand([]string{"a", "b", "c", "a"}, 0, 100, 0.3)

	require.Equal(t, []string{"a", "b", "c"}, b.Domain())
	step := 100 / 3.3
	first := (100 - step*2.7) / 2

	pos, ok := b.Map("a")
	require.True(t, ok)
	assert.InDelta(t, first, pos, 1e-9)
	pos, _ = b.Map("c")
	assert.InDelta(t, first+2*step, pos, 1e-9)
	assert.InDelta(t, step*0.7, b.Bandwidth(), 1e-9)

	_, ok = b.Map("missing")
	assert.False(t, ok)
}

func TestPoint(t *testing.T) {
	p := NewPoint([]string{"T1", "T2", "T3"}, 80, 650)

	for want, c := range map[float64]string{80: "T1", 365: "T2", 650: "T3"} {
		got, ok := p.Map(c)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-9, c)
	}
	assert.Zero(t, p.Bandwidth())

	single := NewPoint([]string{"T1"}, 0, 100)
	got, _ := single.Map("T1")
	assert.Equal(t, 50.0, got)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "25%", FormatPercent(0.25))
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "110%", FormatPercent(1.1))
	assert.Equal(t, "1,234,567", FormatNumber(1234567, 50))
	assert.Equal(t, "0.5", FormatNumber(0.5, 0.1))

	assert.Equal(t, "40%", TickFormatter(KindProbability, 0.2)(0.4))
	assert.Equal(t, "2,000", TickFormatter(KindRevenue, 500)(2000))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "A01-Apple", SanitizeID("A01 - Apple"))
	assert.Equal(t, "G1Fruit", SanitizeID("[G1] Fruit"))
	assert.Equal(t, "Ca-phe-sua", SanitizeSeriesID("Cà phê  sữa"))
	assert.Equal(t, "G1-o-uong", SanitizeSeriesID("[G1] Đồ uống"))
	assert.Equal(t, "", SanitizeID("!!!"))
}
