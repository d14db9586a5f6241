package layout

import (
	"testing"

	"github.com/matzehuels/planbook/pkg/errors"
)

func TestParseSidebarPosition(t *testing.T) {
	tests := []struct {
		in      string
		want    SidebarPosition
		wantErr bool
	}{
		{"", SidebarLeft, false},
		{"left", SidebarLeft, false},
		{"Right", SidebarRight, false},
		{" none ", SidebarNone, false},
		{"top", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSidebarPosition(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSidebarPosition(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSidebarPosition(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewContentArea(t *testing.T) {
	grid := PageGrid{Cols: 37, Rows: 55}
	tests := []struct {
		name    string
		region  Bounds
		wantErr bool
	}{
		{"full page", grid.Bounds(), false},
		{"inset", Bounds{Col: 2, Row: 2, Width: 33, Height: 51}, false},
		{"too wide", Bounds{Col: 1, Width: 37, Height: 1}, true},
		{"below page", Bounds{Row: 50, Width: 1, Height: 6}, true},
		{"empty", Bounds{Col: 1, Row: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContentArea(grid, tt.region)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewContentArea(%v) error = %v, wantErr %v", tt.region, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("error code = %s, want INVALID_LAYOUT", errors.GetCode(err))
			}
		})
	}
}

func TestStandardPage(t *testing.T) {
	grid := PageGrid{Cols: 37, Rows: 55}
	base := PageOptions{Margin: 1, SidebarWidth: 5, HeaderHeight: 3, TabHeight: 2, Gap: 1}

	tests := []struct {
		name    string
		side    SidebarPosition
		nodes   map[string]Bounds
		missing []string
	}{
		{
			name: "sidebar left",
			side: SidebarLeft,
			nodes: map[string]Bounds{
				NodePage:    {Col: 1, Row: 1, Width: 35, Height: 53},
				NodeTabs:    {Col: 1, Row: 1, Width: 35, Height: 2},
				NodeMain:    {Col: 1, Row: 4, Width: 35, Height: 50},
				NodeSidebar: {Col: 1, Row: 4, Width: 5, Height: 50},
				NodeContent: {Col: 7, Row: 4, Width: 29, Height: 50},
				NodeHeader:  {Col: 7, Row: 4, Width: 29, Height: 3},
				NodeBody:    {Col: 7, Row: 8, Width: 29, Height: 46},
			},
		},
		{
			name: "sidebar right",
			side: SidebarRight,
			nodes: map[string]Bounds{
				NodeContent: {Col: 1, Row: 4, Width: 29, Height: 50},
				NodeSidebar: {Col: 31, Row: 4, Width: 5, Height: 50},
				NodeBody:    {Col: 1, Row: 8, Width: 29, Height: 46},
			},
		},
		{
			name: "no sidebar",
			side: SidebarNone,
			nodes: map[string]Bounds{
				NodeContent: {Col: 1, Row: 4, Width: 35, Height: 50},
			},
			missing: []string{NodeSidebar},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			opts.Sidebar = tt.side
			page, err := StandardPage(grid, opts)
			if err != nil {
				t.Fatal(err)
			}
			for name, want := range tt.nodes {
				n := page.Find(name)
				if n == nil {
					t.Fatalf("node %q missing", name)
				}
				if got := mustBounds(t, n); got != want {
					t.Errorf("%s = %v, want %v", name, got, want)
				}
			}
			for _, name := range tt.missing {
				if page.Find(name) != nil {
					t.Errorf("node %q should not exist", name)
				}
			}
		})
	}
}

func TestStandardPageOptionalRegions(t *testing.T) {
	page, err := StandardPage(PageGrid{Cols: 10, Rows: 10}, PageOptions{Sidebar: SidebarNone})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{NodeTabs, NodeHeader, NodeSidebar} {
		if page.Find(name) != nil {
			t.Errorf("node %q should be omitted", name)
		}
	}
	if got := mustBounds(t, page.Find(NodeBody)); got != (Bounds{Width: 10, Height: 10}) {
		t.Errorf("body = %v, want whole page", got)
	}
}

func TestStandardPageErrors(t *testing.T) {
	tests := []struct {
		name string
		grid PageGrid
		opts PageOptions
		code errors.Code
	}{
		{"empty grid", PageGrid{}, PageOptions{Sidebar: SidebarNone}, errors.ErrCodeInvalidLayout},
		{"margin eats page", PageGrid{Cols: 4, Rows: 4}, PageOptions{Margin: 2, Sidebar: SidebarNone}, errors.ErrCodeInvalidLayout},
		{"sidebar without width", PageGrid{Cols: 10, Rows: 10}, PageOptions{}, errors.ErrCodeInvalidLayout},
		{"bad position", PageGrid{Cols: 10, Rows: 10}, PageOptions{Sidebar: "top", SidebarWidth: 2}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StandardPage(tt.grid, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("StandardPage() error = %v, want %s", err, tt.code)
			}
		})
	}
}
