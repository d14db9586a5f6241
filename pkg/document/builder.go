package document

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/planbook/pkg/observability"
)

// Link is a navigation affordance on a rendered page: a rectangle in output
// coordinates pointing at a destination key.
type Link struct {
	Dest   string  `json:"dest"`
	Page   int     `json:"page"` // resolved target page, 0 if unresolved
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderedPage is the output of a [Producer] for one page.
type RenderedPage struct {
	Number int    `json:"number"`
	Key    string `json:"key"`
	Type   string `json:"type"`
	Label  string `json:"label,omitempty"`
	Data   []byte `json:"-"`
	Links  []Link `json:"links,omitempty"`
}

// Producer renders the content of one page in pass 2. The resolver is bound
// to the page and answers link queries for the whole document.
type Producer interface {
	Produce(ctx context.Context, page *PageDeclaration, res *Resolver) (*RenderedPage, error)
}

// ProducerFunc adapts a function to [Producer].
type ProducerFunc func(ctx context.Context, page *PageDeclaration, res *Resolver) (*RenderedPage, error)

// Produce calls f.
func (f ProducerFunc) Produce(ctx context.Context, page *PageDeclaration, res *Resolver) (*RenderedPage, error) {
	return f(ctx, page, res)
}

// Sink receives rendered pages in page-number order.
type Sink interface {
	WritePage(ctx context.Context, page *RenderedPage) error
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(ctx context.Context, page *RenderedPage) error

// WritePage calls f.
func (f SinkFunc) WritePage(ctx context.Context, page *RenderedPage) error { return f(ctx, page) }

// Collector is a [Sink] that keeps every page in memory.
type Collector struct {
	Pages []*RenderedPage
}

// WritePage appends page.
func (c *Collector) WritePage(_ context.Context, page *RenderedPage) error {
	c.Pages = append(c.Pages, page)
	return nil
}

// Builder runs registration and rendering over a [Document].
type Builder struct {
	logger      *log.Logger
	parallelism int
}

// BuilderOption configures a [Builder].
type BuilderOption func(*Builder)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithParallelism renders up to n pages concurrently in pass 2. Pages still
// reach the sink in page-number order. Values below 2 render sequentially.
func WithParallelism(n int) BuilderOption {
	return func(b *Builder) { b.parallelism = n }
}

// NewBuilder creates a builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{logger: log.New(io.Discard), parallelism: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildStats holds pass timings.
type BuildStats struct {
	Pages        int
	Links        int
	Unresolved   int
	RegisterTime time.Duration
	RenderTime   time.Duration
}

// BuildResult is what a successful build leaves behind besides the pages
// written to the sink.
type BuildResult struct {
	Registry       *Registry
	Outline        *Outline
	MissingOutline []string
	Stats          BuildStats
}

// Build validates doc, finalizes its page sets, registers every page (pass 1)
// and renders every page through producer into sink (pass 2). Cancellation of
// ctx is checked between pages.
func (b *Builder) Build(ctx context.Context, doc *Document, producer Producer, sink Sink) (*BuildResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	for _, s := range doc.Sets() {
		if s.Finalized() {
			continue
		}
		if err := s.Finalize(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	reg, err := doc.Register()
	result := &BuildResult{Registry: reg}
	result.Stats.RegisterTime = time.Since(start)
	observability.Pipeline().OnRegisterComplete(ctx, doc.Len(), result.Stats.RegisterTime, err)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	b.logger.Debug("registered pages",
		"pages", reg.Len(),
		"groups", len(reg.GroupNames()),
		"duration", result.Stats.RegisterTime)

	result.Outline, result.MissingOutline = BuildOutline(doc, reg)
	for _, key := range result.MissingOutline {
		b.logger.Warn("outline entry does not resolve", "key", key)
	}

	start = time.Now()
	emit := func(page *RenderedPage) error {
		result.Stats.Pages++
		for _, l := range page.Links {
			result.Stats.Links++
			if l.Page == 0 {
				result.Stats.Unresolved++
			}
		}
		return sink.WritePage(ctx, page)
	}
	if b.parallelism > 1 {
		err = b.renderParallel(ctx, doc, reg, producer, emit)
	} else {
		err = b.renderSequential(ctx, doc, reg, producer, emit)
	}
	result.Stats.RenderTime = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	b.logger.Debug("rendered pages",
		"pages", result.Stats.Pages,
		"links", result.Stats.Links,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (b *Builder) renderSequential(ctx context.Context, doc *Document, reg *Registry, producer Producer, emit func(*RenderedPage) error) error {
	for _, p := range doc.Pages() {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := b.renderPage(ctx, p, reg, producer)
		if err != nil {
			return err
		}
		if err := emit(page); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) renderParallel(ctx context.Context, doc *Document, reg *Registry, producer Producer, emit func(*RenderedPage) error) error {
	pages := doc.Pages()
	rendered := make([]*RenderedPage, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallelism)
	for i, p := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, err := b.renderPage(gctx, p, reg, producer)
			if err != nil {
				return err
			}
			rendered[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, page := range rendered {
		if err := emit(page); err != nil {
			return err
		}
	}
	return nil
}

// renderPage produces one page and fills in the fields the producer may leave
// empty: number, key, type, label and the target page of each link.
func (b *Builder) renderPage(ctx context.Context, p *PageDeclaration, reg *Registry, producer Producer) (*RenderedPage, error) {
	key := p.DestinationKey()
	res, err := reg.Resolver(key)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	page, err := producer.Produce(ctx, p, res)
	observability.Pipeline().OnPageRendered(ctx, res.Current().Page, key, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("page %d (%s): %w", res.Current().Page, key, err)
	}
	if page == nil {
		page = &RenderedPage{}
	}
	page.Number = res.Current().Page
	page.Key = key
	page.Type = p.Type
	if c, ok := p.Context(); ok && page.Label == "" {
		page.Label = c.Label
	}
	for i := range page.Links {
		l := &page.Links[i]
		if l.Page != 0 {
			continue
		}
		if dest := reg.Lookup(l.Dest); dest != nil {
			l.Page = dest.Page
		} else {
			b.logger.Debug("unresolved link", "page", page.Number, "dest", l.Dest)
		}
	}
	return page, nil
}
