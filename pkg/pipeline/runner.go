package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planbook/pkg/buildinfo"
	"github.com/matzehuels/planbook/pkg/cache"
	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/observability"
	"github.com/matzehuels/planbook/pkg/planner"
	"github.com/matzehuels/planbook/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and preview server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete declare → build → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Declare
	doc, err := r.Declare(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("declare: %w", err)
	}
	result.Document = doc

	// Stage 2: Build
	if err := r.Build(ctx, doc, opts, result); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	// Stage 3: Export
	exportStart := time.Now()
	if err := r.Export(ctx, result, opts); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Declare assembles the document for opts.Config.
func (r *Runner) Declare(ctx context.Context, opts Options) (*document.Document, error) {
	start := time.Now()
	doc, err := planner.Declare(opts.Config)
	elapsed := time.Since(start)

	pages := 0
	if doc != nil {
		pages = doc.Len()
	}
	observability.Pipeline().OnDeclareComplete(ctx, pages, elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("declared document",
		"pages", pages,
		"groups", len(doc.Groups()),
		"duration", elapsed)
	return doc, nil
}

// Build registers and renders every page of doc into result. Pages rendered
// earlier from the same configuration come from the cache unless
// opts.Refresh is set.
func (r *Runner) Build(ctx context.Context, doc *document.Document, opts Options, result *Result) error {
	hash, err := BuildHash(opts)
	if err != nil {
		return err
	}
	result.BuildHash = hash

	theme, err := render.ThemeByName(opts.Config.Theme)
	if err != nil {
		return err
	}
	ctx = render.WithTheme(ctx, theme)

	producer := &cachingProducer{
		inner: planner.NewProducer(opts.Config,
			planner.WithLinkPrefix(opts.LinkPrefix),
			planner.WithLogger(opts.Logger)),
		cache:   r.Cache,
		keyer:   r.Keyer,
		hash:    hash,
		refresh: opts.Refresh,
		logger:  r.Logger,
	}
	builder := document.NewBuilder(
		document.WithLogger(opts.Logger),
		document.WithParallelism(opts.Parallelism),
	)

	var sink document.Collector
	build, err := builder.Build(ctx, doc, producer, &sink)
	if err != nil {
		return err
	}
	result.Build = build
	result.Pages = sink.Pages
	result.Stats.Pages = build.Stats.Pages
	result.Stats.Links = build.Stats.Links
	result.Stats.Unresolved = build.Stats.Unresolved
	result.Stats.RegisterTime = build.Stats.RegisterTime
	result.Stats.RenderTime = build.Stats.RenderTime
	result.CacheInfo.PageHits = int(producer.hits.Load())
	result.CacheInfo.PageMisses = int(producer.misses.Load())

	r.Logger.Info("rendered pages",
		"pages", result.Stats.Pages,
		"links", result.Stats.Links,
		"cached", result.CacheInfo.PageHits,
		"duration", result.Stats.RenderTime)
	if result.Stats.Unresolved > 0 {
		r.Logger.Warn("pages link to unknown destinations", "links", result.Stats.Unresolved)
	}
	return nil
}

// BuildHash identifies everything a rendered page depends on: the program
// version, the configuration and the link prefix.
func BuildHash(opts Options) (string, error) {
	return cache.HashJSON(struct {
		Generator  string `json:"generator"`
		Config     any    `json:"config"`
		LinkPrefix string `json:"link_prefix"`
	}{buildinfo.Generator(), opts.Config, opts.LinkPrefix})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
