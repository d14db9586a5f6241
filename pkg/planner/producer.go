package planner

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planbook/pkg/config"
	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/errors"
	"github.com/matzehuels/planbook/pkg/layout"
	"github.com/matzehuels/planbook/pkg/render"
	"github.com/matzehuels/planbook/pkg/render/svg"
)

// Producer draws planner pages as SVG. It is safe for concurrent use; every
// call builds its own layout tree, renderer and canvas.
type Producer struct {
	cfg        *config.Planner
	metrics    render.Metrics
	linkPrefix string
	logger     *log.Logger
}

// Option configures a [Producer].
type Option func(*Producer)

// WithLinkPrefix sets the href prefix of page links. The default "#" suits
// a merged PDF; the preview server uses "/dest/".
func WithLinkPrefix(prefix string) Option {
	return func(p *Producer) { p.linkPrefix = prefix }
}

// WithLogger sets the logger for skipped links.
func WithLogger(l *log.Logger) Option {
	return func(p *Producer) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProducer creates a producer for pages declared by [Declare] from the
// same configuration.
func NewProducer(cfg *config.Planner, opts ...Option) *Producer {
	p := &Producer{
		cfg:        cfg,
		metrics:    cfg.Metrics(),
		linkPrefix: "#",
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Produce lays out and draws one page. The theme is taken from ctx, see
// [render.WithTheme].
func (p *Producer) Produce(ctx context.Context, page *document.PageDeclaration, res *document.Resolver) (*document.RenderedPage, error) {
	root, err := layout.StandardPage(p.cfg.Grid, p.cfg.PageOptions())
	if err != nil {
		return nil, err
	}

	pr := &pageRender{
		Producer: p,
		page:     page,
		res:      res,
		theme:    render.ThemeFrom(ctx),
		renderer: render.NewRenderer(p.metrics),
	}
	if err := pr.attach(root); err != nil {
		return nil, err
	}
	if err := layout.Recompute(root); err != nil {
		return nil, err
	}

	w, h := p.metrics.PageSize(p.cfg.Grid)
	canvas := svg.New(w, h,
		svg.WithBackground(pr.theme.Background),
		svg.WithFontFamily(pr.theme.FontFamily),
		svg.WithTitle(pr.title()),
		svg.WithLinkPrefix(p.linkPrefix),
		svg.WithAnchor(page.DestinationKey()),
	)
	if err := pr.renderer.Render(ctx, canvas, root); err != nil {
		return nil, err
	}
	return &document.RenderedPage{Data: canvas.Bytes(), Links: canvas.Links()}, nil
}

// pageRender holds the state of one Produce call.
type pageRender struct {
	*Producer
	page     *document.PageDeclaration
	res      *document.Resolver
	theme    render.Theme
	renderer *render.Renderer
}

// attach adds the navigation and content subtrees to the computed template
// and registers their handlers.
func (pr *pageRender) attach(root *layout.Node) error {
	if tabs := root.Find(layout.NodeTabs); tabs != nil {
		if n := len(pr.res.Group(GroupTabs)); n > 0 {
			strip, err := layout.NewColumns(nodeTabStrip, layout.Split{Count: n})
			if err != nil {
				return err
			}
			tabs.Add(strip)
			pr.renderer.HandleFunc(nodeTabStrip, pr.drawTabs)
		}
	}
	if side := root.Find(layout.NodeSidebar); side != nil {
		nav, err := layout.NewRows(nodeMonthNav, layout.Split{Count: len(pr.cfg.Months)})
		if err != nil {
			return err
		}
		side.Add(nav)
		pr.renderer.HandleFunc(nodeMonthNav, pr.drawMonthNav)
	}
	if header := root.Find(layout.NodeHeader); header != nil {
		header.Add(layout.NewContainer(nodeHeaderBar, layout.Horizontal).Add(
			layout.NewBox(nodeTitle, layout.Flex(1)),
			layout.NewBox(nodeNavPrev, layout.Width(2)),
			layout.NewBox(nodeNavNext, layout.Width(2)),
		))
		pr.renderer.HandleFunc(nodeTitle, pr.drawTitle)
		pr.renderer.HandleFunc(nodeNavPrev, pr.drawNav(pr.prev, "‹"))
		pr.renderer.HandleFunc(nodeNavNext, pr.drawNav(pr.next, "›"))
	}

	body := root.Find(layout.NodeBody)
	switch pr.page.Type {
	case TypeIndex:
		return pr.attachIndex(body)
	case TypeMonthly:
		return pr.attachMonth(body)
	case TypeWeekly:
		return pr.attachWeek(body)
	case TypeGrid:
		kind, _ := pr.page.Params[ParamKind].(string)
		pr.renderer.HandleFunc(layout.NodeBody, pr.drawPattern(kind))
		return nil
	case TypeNotes:
		pr.renderer.HandleFunc(layout.NodeBody, pr.drawPattern(config.GridLined))
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "no content for page type %q", pr.page.Type)
}

// link makes r point at dest. A missing destination is skipped.
func (pr *pageRender) link(c render.Canvas, r render.Rect, dest *document.DestinationInfo, what string) {
	if dest == nil {
		pr.logger.Debug("link target missing", "page", pr.page.DestinationKey(), "link", what)
		return
	}
	c.Link(r, dest.Key)
}
