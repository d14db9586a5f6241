package navgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planbook/pkg/render/svg"
)

// DOT converts the graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Edges carrying more than one link are drawn bold and labelled with the
// link count.
func (g *Graph) DOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [color=\"#555555\", arrowsize=0.6];\n")
	buf.WriteString("\n")

	clustered := make(map[string]bool)
	for i, c := range g.Clusters {
		label := c.Name
		if c.Cycle {
			label += " (cycle)"
		}
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n    style=dashed;\n", label)
		for _, k := range c.Keys {
			clustered[k] = true
			n, _ := g.Node(k)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.Key, strings.Join(g.attrs(n), ", "))
		}
		buf.WriteString("  }\n")
	}

	for _, n := range g.Nodes {
		if clustered[n.Key] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Key, strings.Join(g.attrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Count > 1 {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=bold];\n", e.From, e.To, strconv.Itoa(e.Count))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (g *Graph) attrs(n Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", g.label(n))}
	if g.in[n.Key] == 0 && n.Page > 1 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func (g *Graph) label(n Node) string {
	if !g.opts.Detailed {
		return fmt.Sprintf("%d: %s", n.Page, n.Key)
	}
	parts := []string{fmt.Sprintf("page %d", n.Page), "type: " + n.Type}
	if len(n.Params) > 0 {
		parts = append(parts, "params: "+n.Params.Canonical())
	}
	return n.Key + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [svg.ToPDF] or [svg.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(data []byte) []byte {
	match := viewBoxRe.FindSubmatch(data)
	if match == nil {
		return data
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return data
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(data, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	data, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return svg.ToPDF(ctx, data)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	data, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return svg.ToPNG(ctx, data, scale)
}
