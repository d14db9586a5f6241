package render

// Anchor is the horizontal alignment of text relative to its x position.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Style describes how a shape is filled and stroked. Empty colors mean
// "none".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Radius      float64 // corner radius for rectangles
}

// TextStyle describes a text run.
type TextStyle struct {
	Color  string
	Size   float64
	Anchor Anchor
	Bold   bool
}

// Canvas is the drawing surface handed to handlers. Coordinates are output
// points with y growing downward; y of Text is the baseline.
type Canvas interface {
	Rect(r Rect, s Style)
	Line(x1, y1, x2, y2 float64, s Style)
	Text(x, y float64, text string, s TextStyle)
	Dot(x, y, radius float64, color string)
	// Link makes r a navigation affordance pointing at a destination key.
	Link(r Rect, dest string)
}
