// Package layout implements the constraint-based box layout engine used to
// position everything on a planner page.
//
// # Grid Units
//
// All layout math happens in grid units: the page is quantized into a
// [PageGrid] of columns and rows (for example a 43×55 dot grid) and every
// computed [Bounds] is an integer rectangle on that grid. Conversion to
// output coordinates is the renderer's job (see package render).
//
// # Nodes
//
// A layout is a tree of [Node] values. Each node carries its own
// [Constraints] (fixed size, min/max, flex weight, gap) and exactly one
// variant out of a closed set:
//
//   - [Box]: a leaf region; children, if any, overlay the full box
//   - [Container]: children laid out sequentially along a [Direction]
//   - [Columns] / [Rows]: quantized equal or explicit slices
//   - [Grid]: rows × columns cells, iterated row-major
//
// # Computing Bounds
//
// [Compute] walks the tree top-down. Every node resolves its own bounds from
// its constraints and the region handed to it by its parent; it never looks
// at siblings. Containers hand each child the space remaining after prior
// siblings and distribute leftover space to flex children, the last flex
// child absorbing any rounding remainder so extents always sum exactly.
//
//	week, _ := layout.NewColumns("week", layout.Split{Count: 7})
//	page := layout.NewContainer("page", layout.Vertical).Add(
//	    layout.NewBox("header", layout.Height(4)),
//	    week.With(layout.Flex(1)),
//	)
//	if err := layout.Compute(page, layout.Bounds{Width: 37, Height: 55}); err != nil {
//	    return err
//	}
//	monday, _ := week.Slice(0)
//
// # Page Templates
//
// [StandardPage] builds the common page skeleton (optional tab strip,
// sidebar on either side, header and body) so page producers only attach
// their own subtree to the body node.
package layout
