package chart

import (
	"math"
)

// Kind tells how bar or line values are read: as a ratio in [0, 1] or as a
// raw amount
type Kind string

const (
	KindProbability Kind = "probability"
	KindRevenue     Kind = "revenue"
)

// Orientation of a bar chart's value axis
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Margins around the plot area
type Margins struct {
	Top, Right, Bottom, Left float64
}

var (
	BarMargins  = Margins{Top: 20, Right: 50, Bottom: 120, Left: 250}
	LineMargins = Margins{Top: 40, Right: 150, Bottom: 50, Left: 80}
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	bandPadding   = 0.3
	tickSize      = 6
	tickPadding   = 3
	axisFontSize  = 10
	labelRotation = -45
)

// Bar is one labeled value
type Bar struct {
	Label string
	Value float64
}

// BarData is the input of DrawBar. Build it with Probability or Revenue.
type BarData struct {
	Kind Kind
	Bars []Bar
}

// Probability wraps ratio-valued bars; the value axis is formatted as percent
func Probability(bars []Bar) BarData {
	return BarData{Kind: KindProbability, Bars: bars}
}

// Revenue wraps raw-valued bars; the value axis shows grouped numbers
func Revenue(bars []Bar) BarData {
	return BarData{Kind: KindRevenue, Bars: bars}
}

// BarOptions control a bar chart's layout
type BarOptions struct {
	Orientation Orientation
	// Width and Height override the target size; zero falls back to it
	Width     float64
	Height    float64
	Title     string
	LabelName string
}

// DrawBar clears t and draws data onto it. Empty data leaves t empty.
func DrawBar(t *Target, data BarData, opts BarOptions) {
	t.Clear()
	if len(data.Bars) == 0 {
		return
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = t.size(DefaultWidth, DefaultHeight)
	}
	if opts.Orientation == "" {
		opts.Orientation = Horizontal
	}
	title := opts.Title
	if title == "" {
		title = t.Title
	}

	scene := &Scene{
		Kind:        SceneBar,
		Title:       title,
		Width:       width,
		Height:      height,
		Orientation: opts.Orientation,
		ValueKind:   data.Kind,
		LabelName:   opts.LabelName,
	}

	labels := make([]string, len(data.Bars))
	maxValue := math.NaN()
	for i, b := range data.Bars {
		labels[i] = b.Label
		scene.Categories = append(scene.Categories, b.Label)
		scene.Values = append(scene.Values, b.Value)
		if !math.IsNaN(b.Value) && (math.IsNaN(maxValue) || b.Value > maxValue) {
			maxValue = b.Value
		}
	}
	top := valueDomainMax(maxValue)

	switch opts.Orientation {
	case Vertical:
		drawVerticalBars(scene, data, labels, top)
	default:
		drawHorizontalBars(scene, data, labels, top)
	}

	t.Draw(scene)
}

// valueDomainMax returns the upper bound of a [0, max] value domain
func valueDomainMax(max float64) float64 {
	if math.IsNaN(max) || max <= 0 {
		return 1
	}
	return max
}

// barLength clamps a value to the drawable [0, +inf) interval
func barLength(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func drawHorizontalBars(scene *Scene, data BarData, labels []string, top float64) {
	m := BarMargins
	w, h := scene.Width, scene.Height
	x := NewLinear(0, top, m.Left, w-m.Right)
	y := NewBand(labels, m.Top, h-m.Bottom, bandPadding)

	for i, b := range data.Bars {
		pos, _ := y.Map(b.Label)
		color := ColorAt(i)
		scene.Colors = append(scene.Colors, color)
		scene.add(Element{
			Type:   ElementRect,
			ID:     "bar-" + SanitizeID(b.Label),
			Class:  "bar",
			X:      m.Left,
			Y:      pos,
			Width:  x.Map(barLength(b.Value)) - m.Left,
			Height: y.Bandwidth(),
			Fill:   color,
		})
	}

	// Value axis along the bottom, five ticks
	axisY := h - m.Bottom
	scene.add(axisLine(Vec{m.Left, axisY}, Vec{w - m.Right, axisY}))
	format := TickFormatter(data.Kind, x.TickStep(5))
	for _, v := range x.Ticks(5) {
		px := x.Map(v)
		scene.add(tickLine(Vec{px, axisY}, Vec{px, axisY + tickSize}))
		scene.add(tickText(px, axisY+tickSize+tickPadding+axisFontSize, format(v), AnchorMiddle, 0))
	}

	// Category axis along the left edge
	scene.add(axisLine(Vec{m.Left, m.Top}, Vec{m.Left, h - m.Bottom}))
	for _, label := range y.Domain() {
		pos, _ := y.Map(label)
		cy := pos + y.Bandwidth()/2
		scene.add(tickLine(Vec{m.Left - tickSize, cy}, Vec{m.Left, cy}))
		scene.add(tickText(m.Left-tickSize-tickPadding, cy+axisFontSize/3, label, AnchorEnd, 0))
	}
}

func drawVerticalBars(scene *Scene, data BarData, labels []string, top float64) {
	m := BarMargins
	w, h := scene.Width, scene.Height
	x := NewBand(labels, m.Left, w-m.Right, bandPadding)
	y := NewLinear(0, top, h-m.Bottom, m.Top)

	for _, b := range data.Bars {
		pos, _ := x.Map(b.Label)
		py := y.Map(barLength(b.Value))
		scene.Colors = append(scene.Colors, ColorOrange)
		scene.add(Element{
			Type:   ElementRect,
			ID:     "bar-" + SanitizeID(b.Label),
			Class:  "bar",
			X:      pos,
			Y:      py,
			Width:  x.Bandwidth(),
			Height: h - m.Bottom - py,
			Fill:   ColorOrange,
		})
	}

	// Category axis along the bottom, labels rotated
	axisY := h - m.Bottom
	scene.add(axisLine(Vec{m.Left, axisY}, Vec{w - m.Right, axisY}))
	for _, label := range x.Domain() {
		pos, _ := x.Map(label)
		cx := pos + x.Bandwidth()/2
		scene.add(tickLine(Vec{cx, axisY}, Vec{cx, axisY + tickSize}))
		scene.add(tickText(cx, axisY+tickSize+tickPadding, label, AnchorEnd, labelRotation))
	}

	// Value axis along the left edge, default tick density
	scene.add(axisLine(Vec{m.Left, m.Top}, Vec{m.Left, h - m.Bottom}))
	format := TickFormatter(data.Kind, y.TickStep(10))
	for _, v := range y.Ticks(10) {
		py := y.Map(v)
		scene.add(tickLine(Vec{m.Left - tickSize, py}, Vec{m.Left, py}))
		scene.add(tickText(m.Left-tickSize-tickPadding, py+axisFontSize/3, format(v), AnchorEnd, 0))
	}
}

func axisLine(from, to Vec) Element {
	return Element{Type: ElementLine, Class: "domain", From: from, To: to, Stroke: ColorAxis, StrokeWidth: 1}
}

func tickLine(from, to Vec) Element {
	return Element{Type: ElementLine, Class: "tick", From: from, To: to, Stroke: ColorAxis, StrokeWidth: 1}
}

func tickText(x, y float64, text string, anchor Anchor, rotate float64) Element {
	return Element{
		Type:     ElementText,
		Class:    "tick-label",
		X:        x,
		Y:        y,
		Text:     text,
		Anchor:   anchor,
		Rotate:   rotate,
		FontSize: axisFontSize,
		Fill:     ColorAxis,
	}
}
