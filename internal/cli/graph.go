package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planbook/pkg/navgraph"
)

// graphOpts holds the graph command flags.
type graphOpts struct {
	output   string
	format   string
	types    []string
	detailed bool
	clusters bool
	scale    float64
	cache    cacheFlags
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: "svg", clusters: true, scale: 2}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw the navigation link graph of a planner",
		Long: `Draw pages as nodes and links as edges. Pages no other page links to
are drawn dashed. Formats: dot, svg, pdf, png (pdf and png need rsvg-convert).`,
		Example: `  planbook graph -c planner.toml -o nav.svg
  planbook graph --type monthly --type weekly -f dot
  planbook graph -f png --scale 3 -o nav.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout for dot, nav.<format> otherwise)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, pdf, png")
	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "only include pages of these types")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show page types and params in node labels")
	cmd.Flags().BoolVar(&opts.clusters, "clusters", opts.clusters, "draw navigation groups as clusters")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png resolution scale")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts graphOpts) error {
	ctx := cmd.Context()
	format := strings.ToLower(opts.format)
	switch format {
	case "dot", "svg", "pdf", "png":
	default:
		return fmt.Errorf("unsupported graph format %q (use dot, svg, pdf or png)", opts.format)
	}

	res, err := c.render(cmd, opts.cache)
	if err != nil {
		return err
	}

	g := navgraph.New(res.Build.Registry, res.Pages, navgraph.Options{
		Detailed: opts.detailed,
		Types:    opts.types,
		Clusters: opts.clusters,
	})
	dot := g.DOT()

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = navgraph.RenderSVG(ctx, dot)
	case "pdf":
		data, err = navgraph.RenderPDF(ctx, dot)
	case "png":
		data, err = navgraph.RenderPNG(ctx, dot, opts.scale)
	}
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}

	if opts.output == "" && format == "dot" {
		_, err := os.Stdout.Write(data)
		return err
	}
	out := opts.output
	if out == "" {
		out = "nav." + format
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	printSuccess("Navigation graph: %d pages, %d edges", len(g.Nodes), len(g.Edges))
	if unreachable := g.Unreachable(); len(unreachable) > 0 {
		printWarning("%d pages are not linked from any other page", len(unreachable))
		for _, n := range unreachable {
			printDetail("%d %s", n.Page, n.Key)
		}
	}
	printFile(out)
	return nil
}
