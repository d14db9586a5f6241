package document

import (
	"strconv"
	"strings"

	"github.com/matzehuels/planbook/pkg/errors"
)

// Label pattern tokens substituted by [PageSet.Finalize].
const (
	TokenPage  = "%page"
	TokenTotal = "%total"
)

// PageContext is a page's position inside its [PageSet].
type PageContext struct {
	Set      string `json:"set"`
	Position int    `json:"position"` // 1-based
	Total    int    `json:"total"`
	Label    string `json:"label"`
}

// First reports whether the page is the first of its set.
func (c PageContext) First() bool { return c.Position == 1 }

// Last reports whether the page is the last of its set.
func (c PageContext) Last() bool { return c.Position == c.Total }

// FormatLabel substitutes %page and %total in pattern.
func FormatLabel(pattern string, position, total int) string {
	return strings.NewReplacer(
		TokenTotal, strconv.Itoa(total),
		TokenPage, strconv.Itoa(position),
	).Replace(pattern)
}

// PageSet groups pages that are paginated together ("Notes 3 of 12").
//
// The set has two phases. Pages are added with [PageSet.Add]; once all pages
// are known, [PageSet.Finalize] locks the set and back-fills every page's
// [PageContext]. Totals are therefore always exact.
type PageSet struct {
	Name         string
	LabelPattern string // e.g. "Notes %page of %total"
	Cycle        bool   // Next/Prev wrap around at the ends

	pages     []*PageDeclaration
	finalized bool
}

// NewPageSet creates an empty, unfinalized set.
func NewPageSet(name, labelPattern string, cycle bool) *PageSet {
	return &PageSet{Name: name, LabelPattern: labelPattern, Cycle: cycle}
}

// Add appends pages. It fails with STATE_FINALIZED once the set is
// finalized.
func (s *PageSet) Add(pages ...*PageDeclaration) error {
	if s.finalized {
		return errors.New(errors.ErrCodeFinalized, "page set %q is finalized", s.Name)
	}
	s.pages = append(s.pages, pages...)
	return nil
}

// Finalize locks the set and assigns Position, Total and Label to every page
// in insertion order. It may be called exactly once.
func (s *PageSet) Finalize() error {
	if s.finalized {
		return errors.New(errors.ErrCodeFinalized, "page set %q is already finalized", s.Name)
	}
	seen := make(map[*PageDeclaration]bool, len(s.pages))
	for _, p := range s.pages {
		if seen[p] {
			return errors.New(errors.ErrCodeInvalidDeclaration,
				"page %q added to set %q twice", p.DestinationKey(), s.Name)
		}
		seen[p] = true
		if c, ok := p.Context(); ok {
			return errors.New(errors.ErrCodeFinalized,
				"page %q in set %q already belongs to set %q", p.DestinationKey(), s.Name, c.Set)
		}
	}
	s.finalized = true

	total := len(s.pages)
	for i, p := range s.pages {
		ctx := PageContext{
			Set:      s.Name,
			Position: i + 1,
			Total:    total,
			Label:    FormatLabel(s.LabelPattern, i+1, total),
		}
		if err := p.SetContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Finalized reports whether Finalize has run.
func (s *PageSet) Finalized() bool { return s.finalized }

// Pages returns the pages in insertion order.
func (s *PageSet) Pages() []*PageDeclaration { return s.pages }

// Len returns the number of pages.
func (s *PageSet) Len() int { return len(s.pages) }

// Next returns the page after p, wrapping to the first page when the set is
// cyclic. It returns nil at the end of a non-cyclic set or when p is not a
// member.
func (s *PageSet) Next(p *PageDeclaration) *PageDeclaration {
	return s.step(p, 1)
}

// Prev returns the page before p, wrapping to the last page when the set is
// cyclic.
func (s *PageSet) Prev(p *PageDeclaration) *PageDeclaration {
	return s.step(p, -1)
}

func (s *PageSet) step(p *PageDeclaration, delta int) *PageDeclaration {
	i := s.indexOf(p)
	if i < 0 {
		return nil
	}
	j := i + delta
	if j < 0 || j >= len(s.pages) {
		if !s.Cycle {
			return nil
		}
		j = (j + len(s.pages)) % len(s.pages)
	}
	return s.pages[j]
}

func (s *PageSet) indexOf(p *PageDeclaration) int {
	for i, q := range s.pages {
		if q == p {
			return i
		}
	}
	return -1
}
