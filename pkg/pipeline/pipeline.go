// Package pipeline provides the build pipeline for planbook.
//
// This package implements the complete declare → build → export pipeline
// used by the CLI and the preview server. By centralizing this logic, both
// entry points cache, log and report the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Declare: Assemble the document from the planner configuration
//  2. Build: Register every page (pass 1) and render every page (pass 2),
//     reusing cached pages
//  3. Export: Produce the requested output formats (SVG pages, PDF, JSON
//     manifest)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planbook/pkg/config"
	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultLinkPrefix is the href prefix of page links in exported files.
const DefaultLinkPrefix = "#"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Config is the planner to build. Nil selects config.Default().
	Config *config.Planner `json:"config"`

	// Formats lists the outputs to export. Defaults to svg.
	Formats []string `json:"formats,omitempty"`

	// Parallelism is the number of pages rendered concurrently. Defaults to
	// the number of CPUs; 1 renders sequentially.
	Parallelism int `json:"parallelism,omitempty"`

	// LinkPrefix is prepended to destination keys in page links.
	LinkPrefix string `json:"link_prefix,omitempty"`

	// Refresh ignores cached pages and artifacts (they are still rewritten).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the declared document.
	Document *document.Document

	// Build holds the sealed registry and the resolved outline.
	Build *document.BuildResult

	// Pages are the rendered pages in page-number order.
	Pages []*document.RenderedPage

	// Manifest describes the build. It is set when json is exported.
	Manifest *Manifest

	// BuildHash identifies the configuration the pages were rendered from.
	BuildHash string

	// Artifacts contains exported outputs keyed by format. SVG pages stay in
	// Pages and are written one file per page.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which pages and artifacts came from the cache.
	CacheInfo CacheInfo
}

// Page returns the rendered page with the 1-based number n, or nil.
func (r *Result) Page(n int) *document.RenderedPage {
	if n < 1 || n > len(r.Pages) {
		return nil
	}
	return r.Pages[n-1]
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Pages        int
	Links        int
	Unresolved   int
	DeclareTime  time.Duration
	RegisterTime time.Duration
	RenderTime   time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PageHits    int  // Pages served from the cache
	PageMisses  int  // Pages rendered
	ArtifactHit bool // Whether the PDF came from the cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated format list such as "svg,pdf".
// Empty items are ignored and duplicates removed.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		o.Config = config.Default()
	} else {
		o.Config.SetDefaults()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Parallelism < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "parallelism cannot be negative")
	}
	if o.Parallelism == 0 {
		o.Parallelism = runtime.NumCPU()
	}
	if o.LinkPrefix == "" {
		o.LinkPrefix = DefaultLinkPrefix
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// PageFileName is the file name of page n in an exported SVG directory.
func PageFileName(n int) string {
	return fmt.Sprintf("page-%03d.svg", n)
}
