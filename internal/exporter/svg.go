package exporter

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgsvg"

	"salespulse/internal/chart"
)

// SVGRenderer encodes chart scenes as SVG documents
type SVGRenderer struct {
	fonts    *font.Cache
	typeface font.Font
	logger   *slog.Logger
}

// NewSVGRenderer creates a renderer using the Liberation Sans typeface
func NewSVGRenderer(logger *slog.Logger) *SVGRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SVGRenderer{
		fonts:    font.NewCache(liberation.Collection()),
		typeface: font.Font{Typeface: "Liberation", Variant: "Sans"},
		logger:   logger.With(slog.String("component", "svg_renderer")),
	}
}

// Render writes the scene of t. An empty target yields a blank canvas.
func (r *SVGRenderer) Render(w io.Writer, t *chart.Target) error {
	scene := t.Scene()
	if scene == nil {
		width, height := t.Width, t.Height
		if width <= 0 || height <= 0 {
			width, height = chart.DefaultWidth, chart.DefaultHeight
		}
		scene = &chart.Scene{Width: width, Height: height}
	}
	return r.RenderScene(w, scene)
}

// RenderScene writes scene as an SVG document
func (r *SVGRenderer) RenderScene(w io.Writer, scene *chart.Scene) error {
	c := vgsvg.New(vg.Length(scene.Width), vg.Length(scene.Height))
	height := scene.Height

	// Scene coordinates grow downwards, the canvas' grow upwards
	at := func(x, y float64) vg.Point {
		return vg.Point{X: vg.Length(x), Y: vg.Length(height - y)}
	}

	for _, e := range scene.Elements {
		switch e.Type {
		case chart.ElementRect:
			var p vg.Path
			p.Move(at(e.X, e.Y))
			p.Line(at(e.X+e.Width, e.Y))
			p.Line(at(e.X+e.Width, e.Y+e.Height))
			p.Line(at(e.X, e.Y+e.Height))
			p.Close()
			r.fill(c, p, e.Fill)
		case chart.ElementLine:
			var p vg.Path
			p.Move(at(e.From.X, e.From.Y))
			p.Line(at(e.To.X, e.To.Y))
			r.stroke(c, p, e.Stroke, e.StrokeWidth)
		case chart.ElementPath:
			if len(e.Points) == 0 {
				continue
			}
			var p vg.Path
			p.Move(at(e.Points[0].X, e.Points[0].Y))
			for _, pt := range e.Points[1:] {
				p.Line(at(pt.X, pt.Y))
			}
			r.stroke(c, p, e.Stroke, e.StrokeWidth)
		case chart.ElementCircle:
			center := at(e.X, e.Y)
			radius := vg.Length(e.R)
			var p vg.Path
			p.Move(vg.Point{X: center.X + radius, Y: center.Y})
			p.Arc(center, radius, 0, 2*math.Pi)
			p.Close()
			r.fill(c, p, e.Fill)
			r.stroke(c, p, e.Stroke, e.StrokeWidth)
		case chart.ElementText:
			r.text(c, at(e.X, e.Y), e)
		}
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode svg: %w", err)
	}
	return nil
}

// WriteTargets writes one <id>.svg per drawn target into dir concurrently
func (r *SVGRenderer) WriteTargets(ctx context.Context, dir string, targets []*chart.Target) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, t := range targets {
		if t.Empty() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.writeFile(filepath.Join(dir, t.ID+".svg"), t)
		})
	}
	return g.Wait()
}

func (r *SVGRenderer) writeFile(path string, t *chart.Target) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Render(f, t); err != nil {
		f.Close()
		return err
	}
	r.logger.Debug("wrote chart", slog.String("target", t.ID), slog.String("path", path))
	return f.Close()
}

func (r *SVGRenderer) fill(c vg.Canvas, p vg.Path, fill string) {
	if fill == "" {
		return
	}
	c.SetColor(parseColor(fill))
	c.Fill(p)
}

func (r *SVGRenderer) stroke(c vg.Canvas, p vg.Path, stroke string, width float64) {
	if stroke == "" || width <= 0 {
		return
	}
	c.SetColor(parseColor(stroke))
	c.SetLineWidth(vg.Length(width))
	c.SetLineDash(nil, 0)
	c.Stroke(p)
}

func (r *SVGRenderer) text(c vg.Canvas, pt vg.Point, e chart.Element) {
	if e.Text == "" {
		return
	}
	size := e.FontSize
	if size <= 0 {
		size = 10
	}
	face := r.fonts.Lookup(r.typeface, vg.Length(size))

	var dx vg.Length
	switch e.Anchor {
	case chart.AnchorMiddle:
		dx = -face.Width(e.Text) / 2
	case chart.AnchorEnd:
		dx = -face.Width(e.Text)
	}

	c.Push()
	defer c.Pop()
	c.Translate(pt)
	if e.Rotate != 0 {
		// Scene angles turn clockwise on screen; canvas angles turn counterclockwise
		c.Rotate(-e.Rotate * math.Pi / 180)
	}
	c.SetColor(parseColor(e.Fill))
	c.FillString(face, vg.Point{X: dx}, e.Text)
}

// parseColor reads "#rrggbb"; anything else is black
func parseColor(s string) color.Color {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
