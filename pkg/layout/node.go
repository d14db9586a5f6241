package layout

import (
	"github.com/matzehuels/planbook/pkg/errors"
)

// Variant is the closed set of node kinds. Each variant stores only the
// fields it needs; [Compute] dispatches on the concrete type.
type Variant interface {
	kind() string
}

// Box is a leaf region. Children of a box, if any, overlay the whole box.
type Box struct{}

// Container lays out its children sequentially along Direction.
type Container struct {
	Direction Direction
}

// Columns divides the node's width into slices; child i occupies slice i.
type Columns struct {
	Split Split
}

// Rows divides the node's height into slices; child i occupies slice i.
type Rows struct {
	Split Split
}

// Grid divides the node into Rows × Cols cells; child k occupies cell
// (k / cols, k % cols).
type Grid struct {
	Rows Split
	Cols Split
}

func (Box) kind() string       { return "box" }
func (Container) kind() string { return "container" }
func (Columns) kind() string   { return "columns" }
func (Rows) kind() string      { return "rows" }
func (Grid) kind() string      { return "grid" }

// Node is one element of a layout tree. A parent exclusively owns its
// children. Bounds are unset until [Compute] runs.
type Node struct {
	Name        string
	Constraints Constraints

	variant  Variant
	parent   *Node
	children []*Node

	bounds *Bounds
	cells  []Bounds // computed slices (columns/rows) or cells (grid, row-major)
	cols   int      // grid column count, for cell addressing
	err    error    // structural error recorded by Add, reported by Compute
}

// NewBox creates a leaf node.
func NewBox(name string, opts ...Option) *Node {
	return &Node{Name: name, Constraints: newConstraints(opts), variant: Box{}}
}

// NewContainer creates a node that lays out children along dir.
func NewContainer(name string, dir Direction, opts ...Option) *Node {
	return &Node{Name: name, Constraints: newConstraints(opts), variant: Container{Direction: dir}}
}

// NewColumns creates a node that splits its width. It fails unless exactly
// one of split.Count and split.Sizes is set.
func NewColumns(name string, split Split, opts ...Option) (*Node, error) {
	if err := split.validate(name); err != nil {
		return nil, err
	}
	return &Node{Name: name, Constraints: newConstraints(opts), variant: Columns{Split: split}}, nil
}

// NewRows creates a node that splits its height. It fails unless exactly one
// of split.Count and split.Sizes is set.
func NewRows(name string, split Split, opts ...Option) (*Node, error) {
	if err := split.validate(name); err != nil {
		return nil, err
	}
	return &Node{Name: name, Constraints: newConstraints(opts), variant: Rows{Split: split}}, nil
}

// NewGrid creates a rows × cols grid node. Both splits are validated.
func NewGrid(name string, rows, cols Split, opts ...Option) (*Node, error) {
	if err := rows.validate(name + ".rows"); err != nil {
		return nil, err
	}
	if err := cols.validate(name + ".cols"); err != nil {
		return nil, err
	}
	return &Node{Name: name, Constraints: newConstraints(opts), variant: Grid{Rows: rows, Cols: cols}}, nil
}

// With applies additional constraint options and returns n.
func (n *Node) With(opts ...Option) *Node {
	for _, opt := range opts {
		opt(&n.Constraints)
	}
	return n
}

// Add appends children and returns n. Structural mistakes (re-parenting a
// node, exceeding a split's slice count) are recorded and reported by
// [Compute].
func (n *Node) Add(children ...*Node) *Node {
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.parent != nil && n.err == nil {
			n.err = errors.New(errors.ErrCodeInvalidLayout, "node %q already belongs to %q", child.Name, child.parent.Name)
			continue
		}
		child.parent = n
		n.children = append(n.children, child)
	}
	if capacity := n.capacity(); capacity >= 0 && len(n.children) > capacity && n.err == nil {
		n.err = errors.New(errors.ErrCodeInvalidLayout, "%s %q has %d slices but %d children",
			n.variant.kind(), n.Name, capacity, len(n.children))
	}
	return n
}

// capacity returns the maximum number of children, or -1 for unlimited.
func (n *Node) capacity() int {
	switch v := n.variant.(type) {
	case Columns:
		return v.Split.Len()
	case Rows:
		return v.Split.Len()
	case Grid:
		return v.Rows.Len() * v.Cols.Len()
	}
	return -1
}

// Variant returns the node's variant.
func (n *Node) Variant() Variant { return n.variant }

// Kind returns the variant name: box, container, columns, rows or grid.
func (n *Node) Kind() string { return n.variant.kind() }

// Children returns the ordered children.
func (n *Node) Children() []*Node { return n.children }

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Bounds returns the computed bounds. ok is false before [Compute].
func (n *Node) Bounds() (b Bounds, ok bool) {
	if n.bounds == nil {
		return Bounds{}, false
	}
	return *n.bounds, true
}

// Slice returns computed slice i of a Columns or Rows node.
func (n *Node) Slice(i int) (Bounds, bool) {
	switch n.variant.(type) {
	case Columns, Rows:
	default:
		return Bounds{}, false
	}
	if i < 0 || i >= len(n.cells) {
		return Bounds{}, false
	}
	return n.cells[i], true
}

// Slices returns all computed slices (Columns, Rows) or cells (Grid,
// row-major). It is nil before [Compute].
func (n *Node) Slices() []Bounds { return n.cells }

// Cell returns the computed bounds of grid cell (row, col).
func (n *Node) Cell(row, col int) (Bounds, bool) {
	if _, ok := n.variant.(Grid); !ok || n.cols == 0 {
		return Bounds{}, false
	}
	if row < 0 || col < 0 || col >= n.cols {
		return Bounds{}, false
	}
	i := row*n.cols + col
	if i >= len(n.cells) {
		return Bounds{}, false
	}
	return n.cells[i], true
}

// Find returns the first node named name in a depth-first, pre-order walk of
// the subtree rooted at n.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants depth first in pre-order. Returning
// false from fn skips the visited node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.children {
		child.walk(fn, depth+1)
	}
}

// Reset clears computed bounds in the whole subtree.
func (n *Node) Reset() {
	n.Walk(func(node *Node, _ int) bool {
		node.bounds = nil
		node.cells = nil
		node.cols = 0
		return true
	})
}
