package layout

import "fmt"

// Bounds is a rectangle in grid units. Col and Row address the top-left cell.
type Bounds struct {
	Col    int `json:"col"`
	Row    int `json:"row"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the first column to the right of the rectangle.
func (b Bounds) Right() int { return b.Col + b.Width }

// Bottom returns the first row below the rectangle.
func (b Bounds) Bottom() int { return b.Row + b.Height }

// IsEmpty reports whether the rectangle covers no cells.
func (b Bounds) IsEmpty() bool { return b.Width <= 0 || b.Height <= 0 }

// Contains reports whether o lies entirely inside b.
func (b Bounds) Contains(o Bounds) bool {
	return o.Col >= b.Col && o.Row >= b.Row && o.Right() <= b.Right() && o.Bottom() <= b.Bottom()
}

// Intersect returns the overlap of b and o. The result is empty (zero width
// or height) when they do not overlap.
func (b Bounds) Intersect(o Bounds) Bounds {
	col := max(b.Col, o.Col)
	row := max(b.Row, o.Row)
	right := min(b.Right(), o.Right())
	bottom := min(b.Bottom(), o.Bottom())
	if right <= col || bottom <= row {
		return Bounds{Col: col, Row: row}
	}
	return Bounds{Col: col, Row: row, Width: right - col, Height: bottom - row}
}

// Inset shrinks the rectangle by n cells on every side. Width and height
// never go below zero.
func (b Bounds) Inset(n int) Bounds {
	return Bounds{
		Col:    b.Col + n,
		Row:    b.Row + n,
		Width:  max(0, b.Width-2*n),
		Height: max(0, b.Height-2*n),
	}
}

// String returns a compact representation used in logs and error messages.
func (b Bounds) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.Col, b.Row, b.Width, b.Height)
}

// PageGrid is the quantized page: the number of grid columns and rows.
type PageGrid struct {
	Cols int `json:"cols" toml:"cols" yaml:"cols"`
	Rows int `json:"rows" toml:"rows" yaml:"rows"`
}

// Bounds returns the full page rectangle.
func (g PageGrid) Bounds() Bounds { return Bounds{Width: g.Cols, Height: g.Rows} }
