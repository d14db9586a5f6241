// Package render draws computed layout trees.
//
// # Overview
//
// The layout engine works in grid units. [Renderer] walks a computed
// [layout.Node] tree depth first, converts every node's bounds to an output
// rectangle with [Metrics.ToRect], and calls the [Handler] registered for the
// node's name. Nodes without a handler are traversed only. Handlers draw
// through the [Canvas] interface; the SVG implementation lives in the
// [svg] subpackage.
//
//	r := render.NewRenderer(render.DefaultMetrics)
//	r.HandleFunc("header", func(ctx context.Context, c render.Canvas, n *layout.Node, rect render.Rect) error {
//	    theme := render.ThemeFrom(ctx)
//	    c.Text(rect.X, rect.CenterY(), "Week 12", render.TextStyle{Color: theme.Foreground, Size: theme.FontSize})
//	    return nil
//	})
//	err := r.Render(render.WithTheme(ctx, theme), canvas, page)
//
// # Themes
//
// A [Theme] travels with the render pass in the context. There is no
// package-level current theme; [ThemeFrom] returns [DefaultTheme] when the
// context carries none.
//
// [svg]: github.com/matzehuels/planbook/pkg/render/svg
package render
