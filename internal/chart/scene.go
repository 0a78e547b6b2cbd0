package chart

// ElementType identifies the primitive an Element draws
type ElementType string

const (
	ElementRect   ElementType = "rect"
	ElementLine   ElementType = "line"
	ElementPath   ElementType = "path"
	ElementCircle ElementType = "circle"
	ElementText   ElementType = "text"
)

// Anchor is the horizontal alignment of a text element
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Vec is a position in scene coordinates: origin top-left, y grows downwards
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one drawn primitive. Only the fields relevant to Type are set.
type Element struct {
	Type  ElementType `json:"type"`
	ID    string      `json:"id,omitempty"`
	Class string      `json:"class,omitempty"`

	// rect: X, Y, Width, Height; circle: X, Y, R; text: X, Y
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	R      float64 `json:"r,omitempty"`

	// line endpoints and path vertices
	From   Vec   `json:"from,omitempty"`
	To     Vec   `json:"to,omitempty"`
	Points []Vec `json:"points,omitempty"`

	Text     string  `json:"text,omitempty"`
	Anchor   Anchor  `json:"anchor,omitempty"`
	Rotate   float64 `json:"rotate,omitempty"` // degrees, clockwise
	FontSize float64 `json:"font_size,omitempty"`

	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
}

// SceneKind is the chart type a scene was drawn by
type SceneKind string

const (
	SceneBar  SceneKind = "bar"
	SceneLine SceneKind = "line"
)

// SeriesPayload is the data behind one drawn line series
type SeriesPayload struct {
	Name  string    `json:"name"`
	ID    string    `json:"id"`
	Color string    `json:"color"`
	X     []string  `json:"x"`
	Y     []float64 `json:"y"`
}

// Scene is the complete drawing of one target. Besides the primitives it keeps
// the data it was drawn from so non-vector backends can render the same chart.
type Scene struct {
	Kind        SceneKind   `json:"kind"`
	Title       string      `json:"title,omitempty"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation Orientation `json:"orientation,omitempty"`
	ValueKind   Kind        `json:"value_kind"`
	LabelName   string      `json:"label_name,omitempty"`

	// Bar payload
	Categories []string  `json:"categories,omitempty"`
	Values     []float64 `json:"values,omitempty"`
	Colors     []string  `json:"colors,omitempty"`

	// Line payload
	Domain []string        `json:"domain,omitempty"`
	Series []SeriesPayload `json:"series,omitempty"`

	Elements []Element `json:"elements"`
}

func (s *Scene) add(e Element) {
	s.Elements = append(s.Elements, e)
}

// Count returns the number of elements of type t
func (s *Scene) Count(t ElementType) int {
	n := 0
	for _, e := range s.Elements {
		if e.Type == t {
			n++
		}
	}
	return n
}

// FindByClass returns the elements carrying class
func (s *Scene) FindByClass(class string) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Class == class {
			out = append(out, e)
		}
	}
	return out
}
