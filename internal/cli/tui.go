package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/planbook/pkg/document"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PageListModel - Interactive page browser
// =============================================================================

// PageListModel is the bubbletea model for browsing rendered pages. Enter
// shows the links of the selected page; following a link jumps to its
// target page.
type PageListModel struct {
	Pages  []*document.RenderedPage
	Cursor int
	Height int
	Offset int

	// Detail is true while the links of the page under the cursor are shown.
	Detail     bool
	LinkCursor int

	byNumber map[int]int
}

// NewPageListModel creates a new page list model.
func NewPageListModel(pages []*document.RenderedPage) PageListModel {
	byNumber := make(map[int]int, len(pages))
	for i, p := range pages {
		byNumber[p.Number] = i
	}
	return PageListModel{Pages: pages, Height: 15, byNumber: byNumber}
}

func (m PageListModel) Init() tea.Cmd {
	return nil
}

func (m PageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail {
			return m.updateDetail(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(m.Cursor - 1)
		case "down", "j":
			m.move(m.Cursor + 1)
		case "pgup":
			m.move(m.Cursor - m.Height)
		case "pgdown":
			m.move(m.Cursor + m.Height)
		case "enter":
			if len(m.Pages) > 0 {
				m.Detail = true
				m.LinkCursor = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.move(m.Cursor)
	}
	return m, nil
}

func (m PageListModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := m.Pages[m.Cursor].Links
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "backspace":
		m.Detail = false
	case "up", "k":
		if m.LinkCursor > 0 {
			m.LinkCursor--
		}
	case "down", "j":
		if m.LinkCursor < len(links)-1 {
			m.LinkCursor++
		}
	case "enter":
		if len(links) == 0 {
			return m, nil
		}
		if i, ok := m.byNumber[links[m.LinkCursor].Page]; ok {
			m.move(i)
			m.LinkCursor = 0
		}
	}
	return m, nil
}

// move places the cursor at i, clamped, and scrolls it into view.
func (m *PageListModel) move(i int) {
	m.Cursor = max(0, min(i, len(m.Pages)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m PageListModel) View() string {
	if len(m.Pages) == 0 {
		return listDimStyle.Render("No pages.") + "\n"
	}
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Pages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ links  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Pages))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Pages[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(p.Number), p.Key, p.Label, strconv.Itoa(len(p.Links))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Page", "Key", "Label", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Pages))))
	return b.String()
}

func (m PageListModel) detailView() string {
	p := m.Pages[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Page %d  %s", p.Number, p.Key)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow  esc back"))
	b.WriteString("\n\n")

	if len(p.Links) == 0 {
		b.WriteString(listDimStyle.Render("  no links"))
		b.WriteString("\n")
	}
	for i, l := range p.Links {
		cursor := "  "
		if i == m.LinkCursor {
			cursor = "> "
		}
		target := "unresolved"
		if l.Page > 0 {
			target = fmt.Sprintf("p.%d", l.Page)
		}
		line := fmt.Sprintf("%s%-28s %s", cursor, l.Dest, listDimStyle.Render(target))
		if i == m.LinkCursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
