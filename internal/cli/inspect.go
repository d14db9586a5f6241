package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/pipeline"
)

// inspectOpts holds the inspect command flags.
type inspectOpts struct {
	pageType    string
	groups      bool
	outline     bool
	interactive bool
	cache       cacheFlags
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the destinations, groups and outline of a planner",
		Example: `  planbook inspect -c planner.toml
  planbook inspect --type weekly
  planbook inspect --groups --outline
  planbook inspect -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pageType, "type", "t", "", "only list pages of this type")
	cmd.Flags().BoolVar(&opts.groups, "groups", false, "list navigation groups")
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "print the PDF outline")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse pages and their links interactively")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, opts inspectOpts) error {
	res, err := c.render(cmd, opts.cache)
	if err != nil {
		return err
	}

	pages := filterPages(res.Pages, opts.pageType)
	if opts.interactive {
		_, err := tea.NewProgram(NewPageListModel(pages), tea.WithAltScreen()).Run()
		return err
	}

	fmt.Println(StyleTitle.Render(res.Document.Title))
	printBuildStats(res)
	printNewline()
	fmt.Println(pageTable(pages))

	if opts.groups {
		printNewline()
		fmt.Println(groupTable(res.Build.Registry))
	}
	if opts.outline && res.Build.Outline != nil {
		printNewline()
		printOutline(res.Build.Outline)
	}
	if len(res.Build.MissingOutline) > 0 {
		printWarning("outline entries without a page: %s", strings.Join(res.Build.MissingOutline, ", "))
	}
	return nil
}

// render builds the planner from --config without writing outputs.
func (c *CLI) render(cmd *cobra.Command, f cacheFlags) (*pipeline.Result, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(cmd, f, nil)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	return runner.Execute(cmd.Context(), pipeline.Options{
		Config:  cfg,
		Refresh: f.refresh,
		Logger:  loggerFromContext(cmd.Context()),
	})
}

func filterPages(pages []*document.RenderedPage, pageType string) []*document.RenderedPage {
	if pageType == "" {
		return pages
	}
	var out []*document.RenderedPage
	for _, p := range pages {
		if p.Type == pageType {
			out = append(out, p)
		}
	}
	return out
}

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// pageTable renders one row per page.
func pageTable(pages []*document.RenderedPage) string {
	rows := make([][]string, len(pages))
	for i, p := range pages {
		rows[i] = []string{strconv.Itoa(p.Number), p.Key, p.Type, p.Label, strconv.Itoa(len(p.Links))}
	}
	return newTable("Page", "Key", "Type", "Label", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return tableHeaderStyle
			case col == 0 || col == 4:
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1).Align(lipgloss.Right)
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// groupTable renders one row per navigation group.
func groupTable(reg *document.Registry) string {
	var rows [][]string
	for _, name := range reg.GroupNames() {
		keys, cycle, _ := reg.GroupKeys(name)
		kind := "linear"
		if cycle {
			kind = "cyclic"
		}
		members := strings.Join(keys, " ")
		if len(keys) > 4 {
			members = fmt.Sprintf("%s %s ... %s", keys[0], keys[1], keys[len(keys)-1])
		}
		rows = append(rows, []string{name, kind, strconv.Itoa(len(keys)), members})
	}
	return newTable("Group", "Kind", "Pages", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func printOutline(o *document.Outline) {
	fmt.Println(StyleTitle.Render("Outline"))
	o.Walk(func(it *document.OutlineItem, depth int) {
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth+1), StyleValue.Render(it.Title), StyleDim.Render(fmt.Sprintf("p.%d", it.Page)))
	})
}
