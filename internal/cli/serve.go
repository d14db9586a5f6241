package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/planbook/internal/server"
	"github.com/matzehuels/planbook/pkg/cache"
	"github.com/matzehuels/planbook/pkg/pipeline"
)

// previewKeyPrefix namespaces preview renders in a shared cache.
const previewKeyPrefix = "preview:"

// previewKeyer keeps preview pages apart from build outputs.
func previewKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), previewKeyPrefix)
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		cf   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview rendered pages in a browser",
		Long: `Render the planner and serve its pages over HTTP. Links between pages
work in the browser. POST /rebuild re-renders with the loaded configuration;
restart to pick up configuration file changes.`,
		Example: `  planbook serve -c planner.toml
  planbook serve --addr :9000 --cache redis://localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd, cf, previewKeyer())
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(ctx)
			srv := server.New(runner, pipeline.Options{
				Config:  cfg,
				Refresh: cf.refresh,
				Logger:  logger,
			}, logger)
			if err := srv.Rebuild(ctx); err != nil {
				return err
			}
			printSuccess("Serving %s", StyleLink.Render("http://"+displayAddr(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cf.register(cmd)

	return cmd
}

// displayAddr adds a host to addresses like ":8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
