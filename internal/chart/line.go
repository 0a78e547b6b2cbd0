package chart

import (
	"math"
)

const (
	lineStrokeWidth = 2
	markerRadius    = 4
	legendRadius    = 5
	legendSpacing   = 20
	legendFontSize  = 12
	headroom        = 1.1
)

// Point is one (category, value) observation of a series
type Point struct {
	X string
	Y float64
}

// LineSeries is an ordered sequence of points sharing a name
type LineSeries struct {
	Name   string
	Points []Point
}

// LineData is the input of DrawLine. Series are drawn and colored in order.
type LineData struct {
	Kind   Kind
	Series []LineSeries
	// Domain fixes the x categories; when nil it is the union of every
	// series' x values in first-seen order
	Domain []string
}

// LineOptions control a line chart's layout
type LineOptions struct {
	Width  float64
	Height float64
	Title  string
}

// XDomain returns the shared x categories of d
func (d LineData) XDomain() []string {
	if len(d.Domain) > 0 {
		return d.Domain
	}
	seen := make(map[string]struct{})
	var domain []string
	for _, s := range d.Series {
		for _, p := range s.Points {
			if _, ok := seen[p.X]; ok {
				continue
			}
			seen[p.X] = struct{}{}
			domain = append(domain, p.X)
		}
	}
	return domain
}

func (d LineData) empty() bool {
	for _, s := range d.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// DrawLine clears t and draws one polyline per series with markers and a
// legend. Data without any point leaves t empty.
func DrawLine(t *Target, data LineData, opts LineOptions) {
	t.Clear()
	if data.empty() {
		return
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = t.size(DefaultWidth, DefaultHeight)
	}
	if data.Kind == "" {
		data.Kind = KindProbability
	}
	title := opts.Title
	if title == "" {
		title = t.Title
	}

	m := LineMargins
	domain := data.XDomain()
	scene := &Scene{
		Kind:      SceneLine,
		Title:     title,
		Width:     width,
		Height:    height,
		ValueKind: data.Kind,
		Domain:    domain,
	}

	maxY := math.NaN()
	for _, s := range data.Series {
		for _, p := range s.Points {
			if !math.IsNaN(p.Y) && (math.IsNaN(maxY) || p.Y > maxY) {
				maxY = p.Y
			}
		}
	}
	top := 1.0
	if !math.IsNaN(maxY) && maxY > 0 {
		top = maxY * headroom
	}

	x := NewPoint(domain, m.Left, width-m.Right)
	y := NewLinear(0, top, height-m.Bottom, m.Top)
	axisY := height - m.Bottom

	// Category axis
	scene.add(axisLine(Vec{m.Left, axisY}, Vec{width - m.Right, axisY}))
	for _, c := range x.Domain() {
		px, _ := x.Map(c)
		scene.add(tickLine(Vec{px, axisY}, Vec{px, axisY + tickSize}))
		scene.add(tickText(px, axisY+tickSize+tickPadding+axisFontSize, c, AnchorMiddle, 0))
	}

	// Value axis with horizontal grid lines
	scene.add(axisLine(Vec{m.Left, m.Top}, Vec{m.Left, axisY}))
	format := TickFormatter(data.Kind, y.TickStep(5))
	for _, v := range y.Ticks(5) {
		py := y.Map(v)
		scene.add(Element{
			Type:        ElementLine,
			Class:       "grid",
			From:        Vec{m.Left, py},
			To:          Vec{width - m.Right, py},
			Stroke:      ColorGrid,
			StrokeWidth: 1,
		})
		scene.add(tickLine(Vec{m.Left - tickSize, py}, Vec{m.Left, py}))
		scene.add(tickText(m.Left-tickSize-tickPadding, py+axisFontSize/3, format(v), AnchorEnd, 0))
	}

	for i, s := range data.Series {
		color := ColorAt(i)
		id := SanitizeSeriesID(s.Name)
		payload := SeriesPayload{Name: s.Name, ID: id, Color: color}

		var path []Vec
		var dots []Element
		for _, p := range s.Points {
			px, ok := x.Map(p.X)
			if !ok || math.IsNaN(p.Y) {
				continue
			}
			py := y.Map(p.Y)
			payload.X = append(payload.X, p.X)
			payload.Y = append(payload.Y, p.Y)
			path = append(path, Vec{px, py})
			dots = append(dots, Element{
				Type:        ElementCircle,
				Class:       "dot-" + id,
				X:           px,
				Y:           py,
				R:           markerRadius,
				Fill:        color,
				Stroke:      ColorWhite,
				StrokeWidth: 1,
			})
		}

		scene.Series = append(scene.Series, payload)
		if len(path) == 0 {
			continue
		}
		scene.add(Element{
			Type:        ElementPath,
			ID:          "line-" + id,
			Class:       "line",
			Points:      path,
			Stroke:      color,
			StrokeWidth: lineStrokeWidth,
		})
		scene.Elements = append(scene.Elements, dots...)
	}

	// Legend to the right of the plot area
	lx, ly := width-m.Right+10, m.Top
	for i, s := range data.Series {
		cy := ly + float64(i*legendSpacing)
		scene.add(Element{
			Type:  ElementCircle,
			Class: "legend-marker",
			X:     lx,
			Y:     cy,
			R:     legendRadius,
			Fill:  ColorAt(i),
		})
		scene.add(Element{
			Type:     ElementText,
			Class:    "legend-label",
			X:        lx + 10,
			Y:        cy + 5,
			Text:     s.Name,
			Anchor:   AnchorStart,
			FontSize: legendFontSize,
			Fill:     ColorAxis,
		})
	}

	t.Draw(scene)
}
