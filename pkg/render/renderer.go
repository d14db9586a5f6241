package render

import (
	"context"
	"fmt"

	"github.com/matzehuels/planbook/pkg/errors"
	"github.com/matzehuels/planbook/pkg/layout"
)

// Handler draws the content of one named node.
type Handler interface {
	Render(ctx context.Context, c Canvas, n *layout.Node, r Rect) error
}

// HandlerFunc adapts a function to [Handler].
type HandlerFunc func(ctx context.Context, c Canvas, n *layout.Node, r Rect) error

// Render calls f.
func (f HandlerFunc) Render(ctx context.Context, c Canvas, n *layout.Node, r Rect) error {
	return f(ctx, c, n, r)
}

// Renderer walks computed layout trees and dispatches named nodes to
// handlers.
type Renderer struct {
	Metrics  Metrics
	handlers map[string]Handler
}

// NewRenderer creates a renderer with no handlers.
func NewRenderer(m Metrics) *Renderer {
	return &Renderer{Metrics: m, handlers: make(map[string]Handler)}
}

// Handle registers h for nodes named name, replacing any previous handler.
func (r *Renderer) Handle(name string, h Handler) {
	r.handlers[name] = h
}

// HandleFunc registers a function handler.
func (r *Renderer) HandleFunc(name string, fn func(ctx context.Context, c Canvas, n *layout.Node, r Rect) error) {
	r.Handle(name, HandlerFunc(fn))
}

// Render draws the tree rooted at root depth first, parents before children.
// A node without computed bounds fails with NOT_COMPUTED. The first handler
// error stops the walk.
func (r *Renderer) Render(ctx context.Context, c Canvas, root *layout.Node) error {
	var walkErr error
	root.Walk(func(n *layout.Node, _ int) bool {
		if walkErr != nil {
			return false
		}
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}
		b, ok := n.Bounds()
		if !ok {
			walkErr = errors.New(errors.ErrCodeNotComputed, "%s node %q has no computed bounds", n.Kind(), n.Name)
			return false
		}
		if n.Name == "" {
			return true
		}
		h, ok := r.handlers[n.Name]
		if !ok {
			return true
		}
		if err := h.Render(ctx, c, n, r.Metrics.ToRect(b)); err != nil {
			walkErr = fmt.Errorf("render %q: %w", n.Name, err)
			return false
		}
		return true
	})
	return walkErr
}
