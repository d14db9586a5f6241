package planner

import (
	"context"
	"fmt"
	"strconv"

	"github.com/matzehuels/planbook/pkg/config"
	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/layout"
	"github.com/matzehuels/planbook/pkg/render"
)

// Names of the nodes attached to the standard page.
const (
	nodeTabStrip  = "tab_strip"
	nodeMonthNav  = "month_nav"
	nodeHeaderBar = "header_bar"
	nodeTitle     = "title"
	nodeNavPrev   = "nav_prev"
	nodeNavNext   = "nav_next"
	nodeIndexList = "index_list"
	nodeWeekList  = "week_list"
	nodeDays      = "days"
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const dotRadius = 0.6

// entry is one line of a listing page.
type entry struct {
	label string
	dest  *document.DestinationInfo
}

func (pr *pageRender) attachIndex(body *layout.Node) error {
	var entries []entry
	for i, name := range pr.cfg.Months {
		entries = append(entries, entry{name, pr.res.Resolve(TypeMonthly, document.Params{ParamMonth: i + 1})})
	}
	for i, gp := range pr.cfg.GridPages {
		entries = append(entries, entry{gp.Title, pr.gridPage(i+1, gp.Kind, 1)})
	}
	if pr.cfg.NotesPages > 0 {
		entries = append(entries, entry{"Notes", pr.res.Resolve(TypeNotes, document.Params{ParamPage: 1})})
	}
	return pr.attachList(body, nodeIndexList, entries)
}

func (pr *pageRender) attachMonth(body *layout.Node) error {
	month, _ := pr.page.Params.Int(ParamMonth)
	var entries []entry
	for _, w := range WeeksOfMonth(month, pr.cfg.Weeks, len(pr.cfg.Months)) {
		entries = append(entries, entry{fmt.Sprintf("Week %d", w), pr.res.Resolve(TypeWeekly, document.Params{ParamWeek: w})})
	}
	return pr.attachList(body, nodeWeekList, entries)
}

// attachList adds one row per entry. Each row shows the label, the target
// page number and links the whole row.
func (pr *pageRender) attachList(body *layout.Node, name string, entries []entry) error {
	if len(entries) == 0 {
		return nil
	}
	rows, err := layout.NewRows(name, layout.Split{Count: len(entries)})
	if err != nil {
		return err
	}
	body.Add(rows)
	pr.renderer.HandleFunc(name, func(_ context.Context, c render.Canvas, n *layout.Node, _ render.Rect) error {
		size := pr.theme.FontSize * 1.2
		for i, b := range n.Slices() {
			r := pr.metrics.ToRect(b)
			e := entries[i]
			c.Line(r.X, r.Bottom(), r.Right(), r.Bottom(), render.Style{Stroke: pr.theme.Grid, StrokeWidth: 0.5})
			c.Text(r.X+size/2, baseline(r, size), e.label, render.TextStyle{Color: pr.theme.Foreground, Size: size})
			if e.dest != nil {
				c.Text(r.Right()-size/2, baseline(r, size), strconv.Itoa(e.dest.Page),
					render.TextStyle{Color: pr.theme.Muted, Size: size, Anchor: render.AnchorEnd})
			}
			pr.link(c, r, e.dest, e.label)
		}
		return nil
	})
	return nil
}

func (pr *pageRender) attachWeek(body *layout.Node) error {
	days, err := layout.NewColumns(nodeDays, layout.Split{Count: len(weekdays)})
	if err != nil {
		return err
	}
	body.Add(days)
	pr.renderer.HandleFunc(layout.NodeBody, pr.drawPattern(config.GridDot))
	pr.renderer.HandleFunc(nodeDays, func(_ context.Context, c render.Canvas, n *layout.Node, _ render.Rect) error {
		size := pr.theme.FontSize
		for i, b := range n.Slices() {
			r := pr.metrics.ToRect(b)
			if i > 0 {
				c.Line(r.X, r.Y, r.X, r.Bottom(), render.Style{Stroke: pr.theme.Muted, StrokeWidth: 0.5})
			}
			c.Text(r.CenterX(), r.Y+pr.metrics.CellSize*0.7, weekdays[i],
				render.TextStyle{Color: pr.theme.Foreground, Size: size, Anchor: render.AnchorMiddle, Bold: true})
		}
		return nil
	})
	return nil
}

// drawPattern fills a node with the background of a grid page kind.
func (pr *pageRender) drawPattern(kind string) render.HandlerFunc {
	return func(_ context.Context, c render.Canvas, n *layout.Node, _ render.Rect) error {
		b, _ := n.Bounds()
		line := render.Style{Stroke: pr.theme.Grid, StrokeWidth: 0.4}
		left, top := pr.metrics.Point(b.Col, b.Row)
		right, bottom := pr.metrics.Point(b.Right(), b.Bottom())
		switch kind {
		case config.GridDot:
			for row := b.Row; row <= b.Bottom(); row++ {
				for col := b.Col; col <= b.Right(); col++ {
					x, y := pr.metrics.Point(col, row)
					c.Dot(x, y, dotRadius, pr.theme.Grid)
				}
			}
		case config.GridLined:
			for row := b.Row + 1; row < b.Bottom(); row++ {
				_, y := pr.metrics.Point(b.Col, row)
				c.Line(left, y, right, y, line)
			}
		case config.GridSquare:
			for row := b.Row; row <= b.Bottom(); row++ {
				_, y := pr.metrics.Point(b.Col, row)
				c.Line(left, y, right, y, line)
			}
			for col := b.Col; col <= b.Right(); col++ {
				x, _ := pr.metrics.Point(col, b.Row)
				c.Line(x, top, x, bottom, line)
			}
		}
		return nil
	}
}

// drawTabs draws the tab strip. The tab owning the current page is
// highlighted.
func (pr *pageRender) drawTabs(_ context.Context, c render.Canvas, n *layout.Node, _ render.Rect) error {
	tabs := pr.res.Group(GroupTabs)
	current := pr.currentTab()
	size := pr.theme.FontSize * 0.9
	for i, b := range n.Slices() {
		if i >= len(tabs) {
			break
		}
		d := tabs[i]
		r := pr.metrics.ToRect(b)
		style := render.Style{Stroke: pr.theme.Grid, StrokeWidth: 0.5, Radius: 2}
		color := pr.theme.Foreground
		if d.Key == current {
			style.Fill = pr.theme.Accent
			color = pr.theme.Background
		}
		c.Rect(r.Inset(0.5), style)
		c.Text(r.CenterX(), baseline(r, size), fit(pr.tabLabel(d), r.W, size),
			render.TextStyle{Color: color, Size: size, Anchor: render.AnchorMiddle})
		c.Link(r, d.Key)
	}
	return nil
}

// drawMonthNav draws one sidebar row per month.
func (pr *pageRender) drawMonthNav(_ context.Context, c render.Canvas, n *layout.Node, _ render.Rect) error {
	current := pr.currentMonth()
	size := pr.theme.FontSize * 0.9
	for i, b := range n.Slices() {
		r := pr.metrics.ToRect(b)
		color := pr.theme.Muted
		if i+1 == current {
			c.Rect(r, render.Style{Fill: pr.theme.Grid})
			color = pr.theme.Foreground
		}
		name := pr.cfg.Months[i]
		c.Text(r.CenterX(), baseline(r, size), fit(name, r.W, size),
			render.TextStyle{Color: color, Size: size, Anchor: render.AnchorMiddle})
		pr.link(c, r, pr.res.Resolve(TypeMonthly, document.Params{ParamMonth: i + 1}), name)
	}
	return nil
}

func (pr *pageRender) drawTitle(_ context.Context, c render.Canvas, _ *layout.Node, r render.Rect) error {
	size := pr.theme.FontSize * 1.6
	c.Text(r.X, baseline(r, size), pr.title(), render.TextStyle{Color: pr.theme.Foreground, Size: size, Bold: true})
	c.Line(r.X, r.Bottom(), r.Right(), r.Bottom(), render.Style{Stroke: pr.theme.Accent, StrokeWidth: 1})
	return nil
}

// drawNav draws an arrow linking to the destination returned by target.
// Arrows without a target are drawn muted and not linked.
func (pr *pageRender) drawNav(target func() *document.DestinationInfo, arrow string) render.HandlerFunc {
	return func(_ context.Context, c render.Canvas, _ *layout.Node, r render.Rect) error {
		size := pr.theme.FontSize * 1.6
		dest := target()
		color := pr.theme.Accent
		if dest == nil {
			color = pr.theme.Grid
		}
		c.Text(r.CenterX(), baseline(r, size), arrow, render.TextStyle{Color: color, Size: size, Anchor: render.AnchorMiddle})
		pr.link(c, r, dest, arrow)
		return nil
	}
}

// title is the heading of the current page.
func (pr *pageRender) title() string {
	params := pr.page.Params
	switch pr.page.Type {
	case TypeIndex:
		return indexTitle(pr.cfg)
	case TypeMonthly:
		m, _ := params.Int(ParamMonth)
		return pr.monthName(m)
	case TypeWeekly:
		w, _ := params.Int(ParamWeek)
		return fmt.Sprintf("Week %d · %s", w, pr.monthName(MonthOfWeek(w, pr.cfg.Weeks, len(pr.cfg.Months))))
	case TypeGrid:
		s, _ := params.Int(ParamSection)
		page, _ := params.Int(ParamPage)
		if s < 1 || s > len(pr.cfg.GridPages) {
			return "Grid"
		}
		gp := pr.cfg.GridPages[s-1]
		if gp.Count == 1 {
			return gp.Title
		}
		return fmt.Sprintf("%s %d/%d", gp.Title, page, gp.Count)
	case TypeNotes:
		if pc, ok := pr.page.Context(); ok {
			return pc.Label
		}
		return "Notes"
	}
	return pr.page.DestinationKey()
}

// prev is the target of the left header arrow.
func (pr *pageRender) prev() *document.DestinationInfo {
	params := pr.page.Params
	switch pr.page.Type {
	case TypeMonthly:
		m, _ := params.Int(ParamMonth)
		return pr.res.Resolve(TypeMonthly, document.Params{ParamMonth: m - 1})
	case TypeWeekly:
		return pr.res.PrevWeek()
	case TypeGrid:
		s, _ := params.Int(ParamSection)
		page, _ := params.Int(ParamPage)
		kind, _ := params[ParamKind].(string)
		return pr.gridPage(s, kind, page-1)
	case TypeNotes:
		page, _ := params.Int(ParamPage)
		return pr.res.Resolve(TypeNotes, document.Params{ParamPage: page - 1})
	}
	return nil
}

// next is the target of the right header arrow. Grid sections and the index
// cycle through their groups; the other pages stop at the last one.
func (pr *pageRender) next() *document.DestinationInfo {
	params := pr.page.Params
	switch pr.page.Type {
	case TypeIndex:
		return pr.res.NextInGroup(GroupTabs)
	case TypeMonthly:
		m, _ := params.Int(ParamMonth)
		return pr.res.Resolve(TypeMonthly, document.Params{ParamMonth: m + 1})
	case TypeWeekly:
		return pr.res.NextWeek()
	case TypeGrid:
		s, _ := params.Int(ParamSection)
		return pr.res.NextInGroup(GridGroup(s))
	case TypeNotes:
		page, _ := params.Int(ParamPage)
		return pr.res.Resolve(TypeNotes, document.Params{ParamPage: page + 1})
	}
	return nil
}

// currentTab returns the key of the tab the current page belongs to.
func (pr *pageRender) currentTab() string {
	params := pr.page.Params
	switch pr.page.Type {
	case TypeWeekly:
		m := pr.currentMonth()
		return document.DestinationKey(TypeMonthly, document.Params{ParamMonth: m})
	case TypeGrid:
		s, _ := params.Int(ParamSection)
		kind, _ := params[ParamKind].(string)
		return document.DestinationKey(TypeGrid, document.Params{ParamSection: s, ParamKind: kind, ParamPage: 1})
	case TypeNotes:
		return document.DestinationKey(TypeNotes, document.Params{ParamPage: 1})
	}
	return pr.page.DestinationKey()
}

// currentMonth returns the month shown or containing the current week, or 0.
func (pr *pageRender) currentMonth() int {
	switch pr.page.Type {
	case TypeMonthly:
		m, _ := pr.page.Params.Int(ParamMonth)
		return m
	case TypeWeekly:
		w, _ := pr.page.Params.Int(ParamWeek)
		return MonthOfWeek(w, pr.cfg.Weeks, len(pr.cfg.Months))
	}
	return 0
}

func (pr *pageRender) tabLabel(d *document.DestinationInfo) string {
	switch d.Type {
	case TypeIndex:
		return "Index"
	case TypeMonthly:
		m, _ := d.Params.Int(ParamMonth)
		return pr.monthName(m)
	case TypeGrid:
		s, _ := d.Params.Int(ParamSection)
		if s >= 1 && s <= len(pr.cfg.GridPages) {
			return pr.cfg.GridPages[s-1].Title
		}
	case TypeNotes:
		return "Notes"
	}
	return d.Key
}

func (pr *pageRender) gridPage(section int, kind string, page int) *document.DestinationInfo {
	return pr.res.Resolve(TypeGrid, document.Params{ParamSection: section, ParamKind: kind, ParamPage: page})
}

func (pr *pageRender) monthName(m int) string {
	if m < 1 || m > len(pr.cfg.Months) {
		return ""
	}
	return pr.cfg.Months[m-1]
}

// baseline returns the y of a text run of the given size vertically
// centered in r.
func baseline(r render.Rect, size float64) float64 {
	return r.CenterY() + size*0.35
}

// fit shortens s to the number of characters that roughly fit into width
// points at the given font size.
func fit(s string, width, size float64) string {
	limit := int(width / (size * 0.6))
	runes := []rune(s)
	if limit < 1 {
		limit = 1
	}
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
