package layout

import (
	"github.com/matzehuels/planbook/pkg/errors"
)

// Compute resets and recomputes bounds for the tree rooted at root inside
// the available region. It returns the first structural error found in the
// tree; in that case the tree is left partially computed.
func Compute(root *Node, available Bounds) error {
	if root == nil {
		return nil
	}
	root.Reset()
	return root.compute(available)
}

// compute resolves n's own bounds from its constraints and region, then lays
// out its children according to the variant.
func (n *Node) compute(available Bounds) error {
	if n.err != nil {
		return n.err
	}
	b := n.Constraints.resolve(available)
	n.bounds = &b

	switch v := n.variant.(type) {
	case Container:
		return n.layoutContainer(b, v.Direction)
	case Columns:
		spans := v.Split.Divide(b.Width, n.Constraints.Gap)
		n.cells = make([]Bounds, len(spans))
		for i, s := range spans {
			n.cells[i] = Bounds{Col: b.Col + s.Offset, Row: b.Row, Width: s.Size, Height: b.Height}
		}
		return n.layoutCells()
	case Rows:
		spans := v.Split.Divide(b.Height, n.Constraints.Gap)
		n.cells = make([]Bounds, len(spans))
		for i, s := range spans {
			n.cells[i] = Bounds{Col: b.Col, Row: b.Row + s.Offset, Width: b.Width, Height: s.Size}
		}
		return n.layoutCells()
	case Grid:
		rows := v.Rows.Divide(b.Height, n.Constraints.Gap)
		cols := v.Cols.Divide(b.Width, n.Constraints.Gap)
		n.cols = len(cols)
		n.cells = make([]Bounds, 0, len(rows)*len(cols))
		for _, r := range rows {
			for _, c := range cols {
				n.cells = append(n.cells, Bounds{
					Col:    b.Col + c.Offset,
					Row:    b.Row + r.Offset,
					Width:  c.Size,
					Height: r.Size,
				})
			}
		}
		return n.layoutCells()
	case Box:
		for _, child := range n.children {
			if err := child.compute(b); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInternal, "node %q has no variant", n.Name)
	}
}

// layoutCells hands child i the i-th computed slice or cell.
func (n *Node) layoutCells() error {
	for i, child := range n.children {
		if err := child.compute(n.cells[i]); err != nil {
			return err
		}
	}
	return nil
}

// layoutContainer distributes the primary axis among children.
//
//  1. Non-flex children are sized in order against the space remaining after
//     prior siblings (fixed sizes verbatim, otherwise clamped by min/max).
//  2. remaining = primary extent - sum(non-flex) - gap*(n-1).
//  3. Flex children share remaining by weight using floor division; the last
//     flex child receives exactly what is left so the sum is exact.
//  4. Children are positioned with a running offset plus gap.
func (n *Node) layoutContainer(b Bounds, dir Direction) error {
	count := len(n.children)
	if count == 0 {
		return nil
	}
	gap := n.Constraints.Gap
	total := b.Height
	if dir == Horizontal {
		total = b.Width
	}

	extents := make([]int, count)
	totalGaps := gap * (count - 1)
	used := 0
	totalWeight := 0
	lastFlex := -1
	for i, child := range n.children {
		if w := child.Constraints.Flex; w > 0 {
			totalWeight += w
			lastFlex = i
			continue
		}
		e, lo, hi := child.Constraints.primary(dir)
		extents[i] = resolveAxis(max(0, total-used-totalGaps), e, lo, hi)
		used += extents[i]
	}

	if lastFlex >= 0 {
		remaining := max(0, total-used-totalGaps)
		assigned := 0
		for i, child := range n.children {
			w := child.Constraints.Flex
			if w <= 0 {
				continue
			}
			if i == lastFlex {
				extents[i] = remaining - assigned
				break
			}
			extents[i] = remaining * w / totalWeight
			assigned += extents[i]
		}
	}

	offset := 0
	for i, child := range n.children {
		region := Bounds{Col: b.Col, Row: b.Row + offset, Width: b.Width, Height: extents[i]}
		if dir == Horizontal {
			region = Bounds{Col: b.Col + offset, Row: b.Row, Width: extents[i], Height: b.Height}
		}
		if err := child.compute(region); err != nil {
			return err
		}
		offset += extents[i] + gap
	}
	return nil
}

// Recompute recomputes the tree inside the bounds root already has, for
// example after attaching children to a computed template.
func Recompute(root *Node) error {
	b, ok := root.Bounds()
	if !ok {
		return errors.New(errors.ErrCodeNotComputed, "node %q has no bounds to recompute in", root.Name)
	}
	return Compute(root, b)
}
