package planner

import (
	"fmt"

	"github.com/matzehuels/planbook/pkg/config"
	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/errors"
)

// Page types.
const (
	TypeIndex   = "index"
	TypeMonthly = "monthly"
	TypeWeekly  = document.TypeWeekly
	TypeGrid    = "grid"
	TypeNotes   = "notes"
)

// Page parameters.
const (
	ParamMonth   = "month"
	ParamWeek    = document.ParamWeek
	ParamSection = "section"
	ParamKind    = "kind"
	ParamPage    = "page"
)

// GroupTabs is the cyclic group behind the tab strip.
const GroupTabs = "tabs"

// SetNotes is the page set of notes pages.
const SetNotes = "notes"

// GridGroup returns the name of the cyclic group of grid section n (1-based).
func GridGroup(section int) string { return fmt.Sprintf("grid_%d", section) }

// MonthOfWeek maps week (1-based) of weeks onto one of months months. Weeks
// are spread evenly, so every month gets floor or ceil of weeks/months.
func MonthOfWeek(week, weeks, months int) int {
	if weeks <= 0 || months <= 0 {
		return 0
	}
	return (week-1)*months/weeks + 1
}

// WeeksOfMonth returns the weeks mapped to month (1-based) in ascending
// order. It is empty when there are fewer weeks than months.
func WeeksOfMonth(month, weeks, months int) []int {
	var out []int
	for w := 1; w <= weeks; w++ {
		if MonthOfWeek(w, weeks, months) == month {
			out = append(out, w)
		}
	}
	return out
}

// Declare builds the document described by cfg. It renders nothing. cfg
// must have its defaults applied; it is validated before use.
func Declare(cfg *config.Planner) (*document.Document, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no planner configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	doc := document.New(cfg.Title)
	tabs := document.NewGroup(GroupTabs, true)

	index := document.NewPage(TypeIndex, nil, document.WithOutline(indexTitle(cfg)))
	doc.AddPage(index)
	tabs.Add(index)

	for i, name := range cfg.Months {
		month := document.NewPage(TypeMonthly, document.Params{ParamMonth: i + 1})
		doc.AddPage(month)
		tabs.Add(month)

		entry := doc.AddOutline(name, month.DestinationKey())
		for _, w := range WeeksOfMonth(i+1, cfg.Weeks, len(cfg.Months)) {
			week := document.NewPage(TypeWeekly, document.Params{ParamWeek: w})
			doc.AddPage(week)
			entry.AddChild(fmt.Sprintf("Week %d", w), week.DestinationKey())
		}
	}

	for i, gp := range cfg.GridPages {
		group := document.NewGroup(GridGroup(i+1), true)
		for j := 1; j <= gp.Count; j++ {
			var opts []document.PageOption
			if j == 1 {
				opts = append(opts, document.WithOutline(gp.Title))
			}
			group.Add(document.NewPage(TypeGrid, document.Params{
				ParamSection: i + 1,
				ParamKind:    gp.Kind,
				ParamPage:    j,
			}, opts...))
		}
		doc.AddGroup(group)
		tabs.Add(group.Pages[0])
	}

	if cfg.NotesPages > 0 {
		notes := document.NewPageSet(SetNotes, cfg.NotesLabel, false)
		for j := 1; j <= cfg.NotesPages; j++ {
			var opts []document.PageOption
			if j == 1 {
				opts = append(opts, document.WithOutline("Notes"))
			}
			if err := notes.Add(document.NewPage(TypeNotes, document.Params{ParamPage: j}, opts...)); err != nil {
				return nil, err
			}
		}
		doc.AddSet(notes)
		tabs.Add(notes.Pages()[0])
	}

	doc.AddGroup(tabs)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("declare: %w", err)
	}
	return doc, nil
}

func indexTitle(cfg *config.Planner) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return "Index"
}
