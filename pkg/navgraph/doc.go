// Package navgraph renders the navigation structure of a built planner as a
// node-link diagram.
//
// # Overview
//
// Every page is a node and every link drawn on a page is an edge to its
// destination. The diagram makes missing or one-way navigation visible: a
// week that nothing links to shows up as an island.
//
// # Usage
//
// Build the graph from a pipeline result, convert it to DOT and render it:
//
//	g := navgraph.New(res.Build.Registry, res.Pages, navgraph.Options{})
//	dot := g.DOT()
//	svg, err := navgraph.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := navgraph.RenderPDF(ctx, dot)
//	png, err := navgraph.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the page type and params
//   - Types: keep only pages of the listed types
//   - Clusters: draw navigation groups as Graphviz clusters
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package navgraph
