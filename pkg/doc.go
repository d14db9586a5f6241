// Package pkg provides the libraries behind planbook, a generator of
// hyperlinked planners for e-ink tablets and PDF readers.
//
// # Overview
//
// A planner is a fixed sequence of pages (index, months, weeks, grid and
// notes pages) in which tabs, week strips and navigation arrows are links to
// other pages. The pkg directory is organized as:
//
//  1. [layout] - Page templates: a node tree over a cell grid, resolved to
//     bounds by fixed, flex and equal splits
//  2. [document] - Declarations, destination registry, resolver and the
//     two-pass builder (register every page, then render)
//  3. [render] and [render/svg] - Drawing primitives, themes and the SVG
//     canvas with rsvg-convert export
//  4. [planner] - The planner itself: which pages exist and how each is drawn
//  5. [pipeline] - Orchestration (declare → build → export) with caching
//  6. [navgraph] - The navigation link graph as DOT, SVG or PDF
//
// Supporting packages: [config] (TOML/YAML planner files), [cache] (file and
// Redis backends), [errors] (coded errors), [observability] (hooks) and
// [buildinfo] (version stamping).
//
// # Architecture
//
//	config.Planner
//	      ↓
//	 [planner] Declare → document.Document
//	      ↓
//	 [document] Builder pass 1: Registry (every page numbered, sealed)
//	      ↓
//	 [document] Builder pass 2: planner.Producer per page, links resolved
//	      ↓
//	 [pipeline] Export: SVG pages, PDF, JSON manifest
//
// Separating the passes means a page can link to any page of the document,
// including pages declared after it.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  config.Default(),
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//	if err != nil {
//	    return err
//	}
//	_, err = pipeline.Write("out", res, pipeline.Options{Formats: []string{"svg", "json"}})
//
// [layout]: github.com/matzehuels/planbook/pkg/layout
// [document]: github.com/matzehuels/planbook/pkg/document
// [render]: github.com/matzehuels/planbook/pkg/render
// [render/svg]: github.com/matzehuels/planbook/pkg/render/svg
// [planner]: github.com/matzehuels/planbook/pkg/planner
// [pipeline]: github.com/matzehuels/planbook/pkg/pipeline
// [navgraph]: github.com/matzehuels/planbook/pkg/navgraph
// [config]: github.com/matzehuels/planbook/pkg/config
// [cache]: github.com/matzehuels/planbook/pkg/cache
// [errors]: github.com/matzehuels/planbook/pkg/errors
// [observability]: github.com/matzehuels/planbook/pkg/observability
// [buildinfo]: github.com/matzehuels/planbook/pkg/buildinfo
package pkg
