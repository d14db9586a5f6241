package layout

// Direction specifies the primary axis of a [Container].
type Direction uint8

const (
	Vertical   Direction = iota // children stacked top to bottom
	Horizontal                  // children placed left to right
)

// String returns "vertical" or "horizontal".
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Extent is a per-axis size request: either a fixed number of grid units or
// auto (fill what the parent offers, subject to min/max).
type Extent struct {
	Amount int
	Fixed  bool
}

// Auto returns an extent that fills the available space.
func Auto() Extent { return Extent{} }

// FixedExtent returns an extent of exactly n grid units.
func FixedExtent(n int) Extent { return Extent{Amount: n, Fixed: true} }

// Constraints are the sizing rules of a single node.
//
// Zero values mean "unset": no fixed size, no minimum, no maximum, no flex
// weight and no gap.
type Constraints struct {
	Width, Height       Extent
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int // 0 means unbounded
	Flex                int // weight for leftover primary-axis space in a container
	Gap                 int // space between children (containers and splits)
}

// Option sets a single constraint.
type Option func(*Constraints)

// Width fixes the node's width.
func Width(n int) Option { return func(c *Constraints) { c.Width = FixedExtent(n) } }

// Height fixes the node's height.
func Height(n int) Option { return func(c *Constraints) { c.Height = FixedExtent(n) } }

// MinWidth sets the minimum width.
func MinWidth(n int) Option { return func(c *Constraints) { c.MinWidth = n } }

// MaxWidth sets the maximum width.
func MaxWidth(n int) Option { return func(c *Constraints) { c.MaxWidth = n } }

// MinHeight sets the minimum height.
func MinHeight(n int) Option { return func(c *Constraints) { c.MinHeight = n } }

// MaxHeight sets the maximum height.
func MaxHeight(n int) Option { return func(c *Constraints) { c.MaxHeight = n } }

// Flex sets the flex weight. A fixed size on the container's primary axis
// still wins when the child resolves its own bounds, so flex children should
// leave that axis auto.
func Flex(weight int) Option { return func(c *Constraints) { c.Flex = weight } }

// Gap sets the gap between children.
func Gap(n int) Option { return func(c *Constraints) { c.Gap = n } }

func newConstraints(opts []Option) Constraints {
	var c Constraints
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// resolveAxis applies the per-axis rule: a fixed size is used verbatim (not
// clamped), otherwise the available extent is clamped to [min, max].
func resolveAxis(available int, e Extent, minSize, maxSize int) int {
	if e.Fixed {
		return e.Amount
	}
	size := available
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	if size < minSize {
		size = minSize
	}
	return size
}

// resolve returns the node's own bounds inside the available region. It is a
// pure function of the constraints and the region.
func (c Constraints) resolve(available Bounds) Bounds {
	return Bounds{
		Col:    available.Col,
		Row:    available.Row,
		Width:  resolveAxis(available.Width, c.Width, c.MinWidth, c.MaxWidth),
		Height: resolveAxis(available.Height, c.Height, c.MinHeight, c.MaxHeight),
	}
}

// primary returns the size rules along the given direction.
func (c Constraints) primary(d Direction) (Extent, int, int) {
	if d == Horizontal {
		return c.Width, c.MinWidth, c.MaxWidth
	}
	return c.Height, c.MinHeight, c.MaxHeight
}
