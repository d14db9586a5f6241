// Package config loads planner configuration files.
//
// Files are TOML or YAML, chosen by extension (.toml, .yaml, .yml). Loading
// applies defaults for every omitted field and validates the result, so a
// [Planner] returned by [Load] is ready for document assembly:
//
//	cfg, err := config.Load("planner.toml")
//	if err != nil {
//	    return err // INVALID_CONFIG or FILE_NOT_FOUND
//	}
//	doc, err := planner.Declare(cfg)
//
// Example TOML:
//
//	title = "2025"
//	weeks = 52
//	sidebar = "left"
//	theme = "sepia"
//
//	[grid]
//	cols = 37
//	rows = 55
//
//	[[grid_pages]]
//	kind = "dot"
//	count = 4
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/planbook/pkg/errors"
	"github.com/matzehuels/planbook/pkg/layout"
	"github.com/matzehuels/planbook/pkg/render"
)

// Defaults.
const (
	DefaultWeeks        = 52
	DefaultMargin       = 1
	DefaultSidebarWidth = 4
	DefaultHeaderHeight = 3
	DefaultTabHeight    = 2
	DefaultCellSizeMM   = 5.0
	DefaultNotesLabel   = "Notes %page / %total"
	MaxWeeks            = 53
)

// DefaultGrid is a 5 mm dot grid on A5-ish paper.
var DefaultGrid = layout.PageGrid{Cols: 37, Rows: 55}

// DefaultMonths are the month labels used when none are configured.
var DefaultMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Grid page kinds.
const (
	GridDot    = "dot"
	GridLined  = "lined"
	GridSquare = "square"
	GridBlank  = "blank"
)

// GridKinds lists the valid grid page kinds.
var GridKinds = []string{GridDot, GridLined, GridSquare, GridBlank}

// GridPage configures a run of free-form grid pages reachable from the tab
// strip.
type GridPage struct {
	Kind  string `toml:"kind" yaml:"kind" json:"kind"`
	Count int    `toml:"count" yaml:"count" json:"count"`
	Title string `toml:"title" yaml:"title" json:"title"`
}

// Planner is the complete planner configuration.
type Planner struct {
	Title        string          `toml:"title" yaml:"title" json:"title"`
	Weeks        int             `toml:"weeks" yaml:"weeks" json:"weeks"`
	Months       []string        `toml:"months" yaml:"months" json:"months"`
	Grid         layout.PageGrid `toml:"grid" yaml:"grid" json:"grid"`
	CellSizeMM   float64         `toml:"cell_size_mm" yaml:"cell_size_mm" json:"cell_size_mm"`
	Margin       int             `toml:"margin" yaml:"margin" json:"margin"`
	Sidebar      string          `toml:"sidebar" yaml:"sidebar" json:"sidebar"`
	SidebarWidth int             `toml:"sidebar_width" yaml:"sidebar_width" json:"sidebar_width"`
	HeaderHeight int             `toml:"header_height" yaml:"header_height" json:"header_height"`
	TabHeight    int             `toml:"tab_height" yaml:"tab_height" json:"tab_height"`
	Theme        string          `toml:"theme" yaml:"theme" json:"theme"`
	GridPages    []GridPage      `toml:"grid_pages" yaml:"grid_pages" json:"grid_pages"`
	NotesPages   int             `toml:"notes_pages" yaml:"notes_pages" json:"notes_pages"`
	NotesLabel   string          `toml:"notes_label" yaml:"notes_label" json:"notes_label"`
}

// Default returns a configuration with every default applied.
func Default() *Planner {
	p := &Planner{}
	p.SetDefaults()
	return p
}

// SetDefaults fills omitted fields.
func (p *Planner) SetDefaults() {
	if p.Weeks == 0 {
		p.Weeks = DefaultWeeks
	}
	if len(p.Months) == 0 {
		p.Months = append([]string(nil), DefaultMonths...)
	}
	if p.Grid.Cols == 0 && p.Grid.Rows == 0 {
		p.Grid = DefaultGrid
	}
	if p.CellSizeMM == 0 {
		p.CellSizeMM = DefaultCellSizeMM
	}
	if p.Margin == 0 {
		p.Margin = DefaultMargin
	}
	if p.Sidebar == "" {
		p.Sidebar = string(layout.SidebarLeft)
	}
	if p.SidebarWidth == 0 {
		p.SidebarWidth = DefaultSidebarWidth
	}
	if p.HeaderHeight == 0 {
		p.HeaderHeight = DefaultHeaderHeight
	}
	if p.TabHeight == 0 {
		p.TabHeight = DefaultTabHeight
	}
	if p.Theme == "" {
		p.Theme = render.DefaultTheme().Name
	}
	if p.NotesLabel == "" {
		p.NotesLabel = DefaultNotesLabel
	}
	for i := range p.GridPages {
		if p.GridPages[i].Count == 0 {
			p.GridPages[i].Count = 1
		}
		if p.GridPages[i].Title == "" {
			p.GridPages[i].Title = capitalize(p.GridPages[i].Kind)
		}
	}
}

// Validate reports the first invalid field as an INVALID_CONFIG error.
func (p *Planner) Validate() error {
	switch {
	case p.Weeks < 1 || p.Weeks > MaxWeeks:
		return invalid("weeks must be between 1 and %d, got %d", MaxWeeks, p.Weeks)
	case len(p.Months) > 12:
		return invalid("at most 12 months, got %d", len(p.Months))
	case p.Grid.Cols <= 0 || p.Grid.Rows <= 0:
		return invalid("grid must be positive, got %dx%d", p.Grid.Cols, p.Grid.Rows)
	case p.CellSizeMM <= 0:
		return invalid("cell_size_mm must be positive, got %v", p.CellSizeMM)
	case p.Margin < 0:
		return invalid("margin cannot be negative")
	case 2*p.Margin >= p.Grid.Cols || 2*p.Margin >= p.Grid.Rows:
		return invalid("margin %d leaves no room on a %dx%d grid", p.Margin, p.Grid.Cols, p.Grid.Rows)
	case p.NotesPages < 0:
		return invalid("notes_pages cannot be negative")
	case p.HeaderHeight < 0 || p.TabHeight < 0 || p.SidebarWidth < 0:
		return invalid("region sizes cannot be negative")
	}
	for i, m := range p.Months {
		if strings.TrimSpace(m) == "" {
			return invalid("month %d has an empty name", i+1)
		}
	}
	if _, err := layout.ParseSidebarPosition(p.Sidebar); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "sidebar")
	}
	if _, err := render.ThemeByName(p.Theme); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	for i, g := range p.GridPages {
		if !validKind(g.Kind) {
			return invalid("grid_pages[%d]: unknown kind %q (must be one of %s)", i, g.Kind, strings.Join(GridKinds, ", "))
		}
		if g.Count < 1 {
			return invalid("grid_pages[%d]: count must be positive", i)
		}
	}
	return nil
}

// SidebarPosition returns the parsed sidebar position.
func (p *Planner) SidebarPosition() layout.SidebarPosition {
	pos, err := layout.ParseSidebarPosition(p.Sidebar)
	if err != nil {
		return layout.SidebarLeft
	}
	return pos
}

// Metrics returns the render metrics for the configured cell size.
func (p *Planner) Metrics() render.Metrics {
	return render.Metrics{CellSize: p.CellSizeMM * render.PointsPerMM}
}

// PageOptions returns the standard page template options.
func (p *Planner) PageOptions() layout.PageOptions {
	return layout.PageOptions{
		Margin:       p.Margin,
		Sidebar:      p.SidebarPosition(),
		SidebarWidth: p.SidebarWidth,
		HeaderHeight: p.HeaderHeight,
		TabHeight:    p.TabHeight,
	}
}

func validKind(kind string) bool {
	for _, k := range GridKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// Format is a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %q (use .toml, .yaml or .yml)", path)
}

// Load reads, defaults and validates a configuration file.
func Load(path string) (*Planner, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", filepath.Base(path))
	}
	return p, nil
}

// Parse decodes, defaults and validates configuration data.
func Parse(data []byte, format Format) (*Planner, error) {
	var p Planner
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported format %q", format)
	}
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
