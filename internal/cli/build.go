package cli

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planbook/pkg/errors"
	"github.com/matzehuels/planbook/pkg/pipeline"
	"github.com/matzehuels/planbook/pkg/render/svg"
)

// buildOpts holds the build command flags.
type buildOpts struct {
	output      string
	formats     string
	parallelism int
	cache       cacheFlags
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{output: "planner", formats: "svg,pdf,json"}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render a planner to SVG pages, PDF and a manifest",
		Long: `Render every page of the planner and write the requested outputs:

  pages/page-001.svg ...  one SVG per page (svg)
  planner.pdf             all pages as one linked PDF (pdf, needs rsvg-convert)
  manifest.json           destinations, groups, outline and links (json)

Unchanged pages are served from the cache.`,
		Example: `  planbook build -c planner.toml
  planbook build -c planner.yaml -o out -f svg,json
  planbook build --cache redis://localhost:6379 --refresh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output formats: svg, pdf, json (comma-separated)")
	cmd.Flags().IntVarP(&opts.parallelism, "parallel", "p", runtime.NumCPU(), "pages rendered concurrently")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, opts buildOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	popts := pipeline.Options{
		Config:      cfg,
		Formats:     formats,
		Parallelism: opts.parallelism,
		Refresh:     opts.cache.refresh,
		Logger:      logger,
	}
	if popts.Wants(pipeline.FormatPDF) && !svg.Available() {
		return fmt.Errorf("pdf output requires rsvg-convert (brew install librsvg, apt install librsvg2-bin)")
	}

	runner, err := c.newRunner(cmd, opts.cache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", cfg.Title))
	if !c.verbose {
		spin.Start()
	}
	res, err := runner.Execute(ctx, popts)
	if !c.verbose {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d pages", res.Stats.Pages))

	written, err := pipeline.Write(opts.output, res, popts)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	printSuccess("Built %s", StyleHighlight.Render(res.Document.Title))
	printBuildStats(res)
	printOutputs(opts.output, written)
	return nil
}

// printOutputs lists written files, collapsing the per-page SVGs to their
// directory.
func printOutputs(dir string, written []string) {
	pages := 0
	for _, path := range written {
		if filepath.Base(filepath.Dir(path)) == pipeline.PagesDirName {
			pages++
			continue
		}
		printFile(path)
	}
	if pages > 0 {
		printFile(fmt.Sprintf("%s (%d files)", filepath.Join(dir, pipeline.PagesDirName), pages))
	}
}
