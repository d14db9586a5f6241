package render

import (
	"github.com/matzehuels/planbook/pkg/layout"
)

// PointsPerMM converts millimetres to PDF points.
const PointsPerMM = 72.0 / 25.4

// Metrics maps grid units to output coordinates. The origin is the top-left
// corner of the page and y grows downward.
type Metrics struct {
	CellSize float64 // size of one grid unit in points
	OriginX  float64 // offset of grid column 0
	OriginY  float64 // offset of grid row 0
}

// DefaultMetrics is a 5 mm dot grid without offset.
var DefaultMetrics = Metrics{CellSize: 5 * PointsPerMM}

// Rect is a rectangle in output coordinates.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Inset shrinks the rectangle by d on every side, never below zero size.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: max(0, r.W-2*d), H: max(0, r.H-2*d)}
}

// ToRect converts grid bounds to an output rectangle.
func (m Metrics) ToRect(b layout.Bounds) Rect {
	return Rect{
		X: m.OriginX + float64(b.Col)*m.CellSize,
		Y: m.OriginY + float64(b.Row)*m.CellSize,
		W: float64(b.Width) * m.CellSize,
		H: float64(b.Height) * m.CellSize,
	}
}

// Point returns the output position of grid intersection (col, row).
func (m Metrics) Point(col, row int) (x, y float64) {
	return m.OriginX + float64(col)*m.CellSize, m.OriginY + float64(row)*m.CellSize
}

// PageSize returns the output size of a page grid including the origin
// offset on both sides.
func (m Metrics) PageSize(g layout.PageGrid) (width, height float64) {
	return 2*m.OriginX + float64(g.Cols)*m.CellSize, 2*m.OriginY + float64(g.Rows)*m.CellSize
}
