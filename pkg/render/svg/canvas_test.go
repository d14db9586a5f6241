package svg

import (
	"context"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/errors"
	"github.com/matzehuels/planbook/pkg/render"
)

func TestCanvasProducesWellFormedSVG(t *testing.T) {
	c := New(100, 200, WithBackground("#fff"), WithTitle("Week <1>"), WithFontFamily("Georgia"))
	c.Rect(render.Rect{X: 1, Y: 2, W: 3.333, H: 4}, render.Style{Stroke: "#000", StrokeWidth: 0.5, Radius: 1})
	c.Line(0, 0, 10, 10, render.Style{Stroke: "red"})
	c.Text(5, 6, "Mon & Tue", render.TextStyle{Size: 9, Anchor: render.AnchorMiddle, Bold: true, Color: "#333"})
	c.Dot(1, 1, 0.4, "#ccc")

	out := c.Bytes()
	dec := xml.NewDecoder(strings.NewReader(string(out)))
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("invalid XML: %v\n%s", err, out)
		}
	}

	for _, want := range []string{
		`viewBox="0 0 100 200"`,
		`font-family="Georgia"`,
		`<title>Week &lt;1&gt;</title>`,
		`width="3.33"`,
		`rx="1"`,
		`stroke-width="0.5"`,
		`text-anchor="middle"`,
		`font-weight="bold"`,
		`>Mon &amp; Tue</text>`,
		`<circle cx="1" cy="1" r="0.4" fill="#ccc"/>`,
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCanvasLinks(t *testing.T) {
	c := New(10, 10, WithLinkPrefix("/dest/"))
	c.Link(render.Rect{X: 1, Y: 2, W: 3, H: 4}, "weekly:week=2")
	want := []document.Link{{Dest: "weekly:week=2", X: 1, Y: 2, Width: 3, Height: 4}}
	if diff := cmp.Diff(want, c.Links()); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
	if out := string(c.Bytes()); !strings.Contains(out, `href="/dest/weekly:week=2"`) {
		t.Errorf("link href missing:\n%s", out)
	}
}

func TestCanvasAnchor(t *testing.T) {
	key := "grid:kind=dot,page=1,section=1"
	c := New(10, 10, WithAnchor(key))
	c.Link(render.Rect{W: 1, H: 1}, key)
	out := string(c.Bytes())
	for _, want := range []string{
		`<g id="grid:kind=dot%2Cpage=1%2Csection=1">`,
		`href="#grid:kind=dot%2Cpage=1%2Csection=1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(string(New(10, 10).Bytes()), "<g id=") {
		t.Error("anchor written without WithAnchor")
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		1.5:      "1.5",
		14.17323: "14.17",
		-2.256:   "-2.26",
		100:      "100",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPagesToPDFRequiresPages(t *testing.T) {
	if _, err := PagesToPDF(context.Background(), nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("PagesToPDF(nil) = %v, want INVALID_INPUT", err)
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	c := New(100, 100)
	c.Rect(render.Rect{W: 50, H: 50}, render.Style{Fill: "#000"})
	pdf, err := PagesToPDF(context.Background(), [][]byte{c.Bytes(), c.Bytes()})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Errorf("output is not a PDF")
	}
}
