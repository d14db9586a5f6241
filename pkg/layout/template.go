package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/planbook/pkg/errors"
)

// Names of the nodes created by [StandardPage].
const (
	NodePage    = "page"
	NodeTabs    = "tabs"
	NodeMain    = "main"
	NodeSidebar = "sidebar"
	NodeContent = "content"
	NodeHeader  = "header"
	NodeBody    = "body"
)

// SidebarPosition places the navigation sidebar of a standard page.
type SidebarPosition string

const (
	SidebarLeft  SidebarPosition = "left"
	SidebarRight SidebarPosition = "right"
	SidebarNone  SidebarPosition = "none"
)

// ParseSidebarPosition parses "left", "right" or "none" (case-insensitive).
// An empty string selects left. Anything else is an error.
func ParseSidebarPosition(s string) (SidebarPosition, error) {
	switch p := SidebarPosition(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return SidebarLeft, nil
	case SidebarLeft, SidebarRight, SidebarNone:
		return p, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid sidebar position %q (must be left, right or none)", s)
	}
}

// NewContentArea validates that region lies inside the page grid and returns
// it. Regions that stick out of the page are construction errors.
func NewContentArea(grid PageGrid, region Bounds) (Bounds, error) {
	if region.IsEmpty() {
		return Bounds{}, errors.New(errors.ErrCodeInvalidLayout, "content area %s is empty", region)
	}
	if !grid.Bounds().Contains(region) {
		return Bounds{}, errors.New(errors.ErrCodeInvalidLayout, "content area %s is outside the %dx%d page grid",
			region, grid.Cols, grid.Rows)
	}
	return region, nil
}

// PageOptions configures [StandardPage].
type PageOptions struct {
	Margin       int             // cells kept free on every page edge
	Sidebar      SidebarPosition // where the sidebar goes; empty means left
	SidebarWidth int             // sidebar width in cells
	HeaderHeight int             // header height in cells; 0 omits the header
	TabHeight    int             // tab strip height in cells; 0 omits the strip
	Gap          int             // gap between the main regions
}

// StandardPage builds and computes the common page skeleton:
//
//	page (vertical)
//	├── tabs     fixed TabHeight, optional
//	└── main     (horizontal, flex)
//	    ├── sidebar  fixed SidebarWidth, left or right, optional
//	    └── content  (vertical, flex)
//	        ├── header   fixed HeaderHeight, optional
//	        └── body     flex
//
// Callers attach their own subtree to the body node and call [Recompute] on
// the returned root.
func StandardPage(grid PageGrid, opts PageOptions) (*Node, error) {
	if grid.Cols <= 0 || grid.Rows <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "page grid %dx%d must be positive", grid.Cols, grid.Rows)
	}
	area, err := NewContentArea(grid, grid.Bounds().Inset(opts.Margin))
	if err != nil {
		return nil, err
	}
	side := opts.Sidebar
	if side == "" {
		side = SidebarLeft
	}
	if _, err := ParseSidebarPosition(string(side)); err != nil {
		return nil, err
	}
	if side != SidebarNone && opts.SidebarWidth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "sidebar %s needs a positive width", side)
	}

	page := NewContainer(NodePage, Vertical, Gap(opts.Gap))
	if opts.TabHeight > 0 {
		page.Add(NewBox(NodeTabs, Height(opts.TabHeight)))
	}

	content := NewContainer(NodeContent, Vertical, Flex(1), Gap(opts.Gap))
	if opts.HeaderHeight > 0 {
		content.Add(NewBox(NodeHeader, Height(opts.HeaderHeight)))
	}
	content.Add(NewBox(NodeBody, Flex(1)))

	main := NewContainer(NodeMain, Horizontal, Flex(1), Gap(opts.Gap))
	switch side {
	case SidebarLeft:
		main.Add(NewBox(NodeSidebar, Width(opts.SidebarWidth)), content)
	case SidebarRight:
		main.Add(content, NewBox(NodeSidebar, Width(opts.SidebarWidth)))
	default:
		main.Add(content)
	}
	page.Add(main)

	if err := Compute(page, area); err != nil {
		return nil, fmt.Errorf("standard page: %w", err)
	}
	return page, nil
}
