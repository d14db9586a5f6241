// Package cli implements the planbook command-line interface.
//
// # Commands
//
//   - build: render a planner to SVG pages, a PDF and a JSON manifest
//   - inspect: list destinations, groups and the outline of a planner
//   - graph: draw the navigation link graph
//   - serve: preview rendered pages in a browser
//   - cache: manage the page cache
//
// All commands take a planner configuration file (.toml, .yaml or .yml) via
// --config; without it the built-in defaults are used. --verbose switches
// to debug logging and reports pipeline and cache events.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planbook/pkg/buildinfo"
	"github.com/matzehuels/planbook/pkg/cache"
	"github.com/matzehuels/planbook/pkg/config"
	"github.com/matzehuels/planbook/pkg/observability"
	"github.com/matzehuels/planbook/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "planbook"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Planbook renders hyperlinked planners for e-ink tablets",
		Long:          `Planbook renders paginated planners (index, months, weeks, grid and notes pages) as SVG and PDF documents in which every tab, week and month label is a link to its page.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Install()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "planner configuration file (.toml, .yaml, .yml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are the cache options shared by commands that render.
type cacheFlags struct {
	spec    string
	noCache bool
	refresh bool
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.spec, "cache", "", `cache backend: "file", "file:<dir>", "none" or a redis:// URL`)
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render pages even when cached")
}

// newRunner creates a pipeline runner for CLI use. A nil keyer uses the
// default keys.
func (c *CLI) newRunner(cmd *cobra.Command, f cacheFlags, keyer cache.Keyer) (*pipeline.Runner, error) {
	spec := f.spec
	if f.noCache {
		spec = "none"
	}
	ch, err := cache.Open(cmd.Context(), spec)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.Instrument(ch), keyer, c.Logger), nil
}

// loadConfig reads the --config file, or returns the defaults.
func (c *CLI) loadConfig() (*config.Planner, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.configPath)
}
