// Package svg implements [render.Canvas] as hand-written SVG and converts
// SVG pages to PDF and PNG with rsvg-convert.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"

	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/render"
)

// Option configures a [Canvas].
type Option func(*Canvas)

// WithBackground fills the page with color before anything is drawn.
func WithBackground(color string) Option { return func(c *Canvas) { c.background = color } }

// WithFontFamily sets the default font family of text elements.
func WithFontFamily(family string) Option { return func(c *Canvas) { c.fontFamily = family } }

// WithTitle sets the SVG document title.
func WithTitle(title string) Option { return func(c *Canvas) { c.title = title } }

// WithLinkPrefix sets the href prefix of link elements. The escaped
// destination key is appended. The default prefix is "#".
func WithLinkPrefix(prefix string) Option { return func(c *Canvas) { c.linkPrefix = prefix } }

// WithAnchor marks the page as the target of links to dest.
func WithAnchor(dest string) Option { return func(c *Canvas) { c.anchor = AnchorID(dest) } }

// AnchorID returns the fragment a link to dest targets. Page anchors and link
// hrefs share it, so the two always match.
func AnchorID(dest string) string { return url.PathEscape(dest) }

// Canvas accumulates SVG elements for one page.
type Canvas struct {
	width, height float64
	background    string
	fontFamily    string
	title         string
	linkPrefix    string
	anchor        string

	body  bytes.Buffer
	links []document.Link
}

// New creates a canvas of the given size in points.
func New(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{width: width, height: height, linkPrefix: "#", fontFamily: "sans-serif"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rect draws a rectangle.
func (c *Canvas) Rect(r render.Rect, s render.Style) {
	fmt.Fprintf(&c.body, `  <rect x="%s" y="%s" width="%s" height="%s"`, num(r.X), num(r.Y), num(r.W), num(r.H))
	if s.Radius > 0 {
		fmt.Fprintf(&c.body, ` rx="%s"`, num(s.Radius))
	}
	writePaint(&c.body, s)
	c.body.WriteString("/>\n")
}

// Line draws a line segment.
func (c *Canvas) Line(x1, y1, x2, y2 float64, s render.Style) {
	fmt.Fprintf(&c.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s"`, num(x1), num(y1), num(x2), num(y2))
	writePaint(&c.body, s)
	c.body.WriteString("/>\n")
}

// Text draws a text run with its baseline at y.
func (c *Canvas) Text(x, y float64, text string, s render.TextStyle) {
	fmt.Fprintf(&c.body, `  <text x="%s" y="%s"`, num(x), num(y))
	if s.Size > 0 {
		fmt.Fprintf(&c.body, ` font-size="%s"`, num(s.Size))
	}
	if s.Anchor != "" && s.Anchor != render.AnchorStart {
		fmt.Fprintf(&c.body, ` text-anchor="%s"`, s.Anchor)
	}
	if s.Bold {
		c.body.WriteString(` font-weight="bold"`)
	}
	if s.Color != "" {
		fmt.Fprintf(&c.body, ` fill="%s"`, escape(s.Color))
	}
	fmt.Fprintf(&c.body, ">%s</text>\n", escape(text))
}

// Dot draws a filled circle.
func (c *Canvas) Dot(x, y, radius float64, color string) {
	fmt.Fprintf(&c.body, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n", num(x), num(y), num(radius), escape(color))
}

// Link makes r clickable and records it for the rendered page.
func (c *Canvas) Link(r render.Rect, dest string) {
	fmt.Fprintf(&c.body, `  <a href="%s%s"><rect x="%s" y="%s" width="%s" height="%s" fill="transparent"/></a>`+"\n",
		escape(c.linkPrefix), escape(AnchorID(dest)), num(r.X), num(r.Y), num(r.W), num(r.H))
	c.links = append(c.links, document.Link{Dest: dest, X: r.X, Y: r.Y, Width: r.W, Height: r.H})
}

// Links returns the links drawn so far.
func (c *Canvas) Links() []document.Link { return c.links }

// Size returns the page size in points.
func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

// Bytes returns the complete SVG document.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%spt" height="%spt" font-family="%s">`+"\n",
		num(c.width), num(c.height), num(c.width), num(c.height), escape(c.fontFamily))
	if c.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(c.title))
	}
	if c.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(c.background))
	}
	if c.anchor != "" {
		fmt.Fprintf(&buf, "  <g id=\"%s\">\n", escape(c.anchor))
	}
	buf.Write(c.body.Bytes())
	if c.anchor != "" {
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePaint(buf *bytes.Buffer, s render.Style) {
	fill := s.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(buf, ` fill="%s"`, escape(fill))
	if s.Stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s"`, escape(s.Stroke))
		if s.StrokeWidth > 0 {
			fmt.Fprintf(buf, ` stroke-width="%s"`, num(s.StrokeWidth))
		}
	}
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(roundTo(f, 100), 'f', -1, 64)
}

func roundTo(f, scale float64) float64 {
	if f < 0 {
		return -float64(int64(-f*scale+0.5)) / scale
	}
	return float64(int64(f*scale+0.5)) / scale
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
