package document

import (
	"github.com/matzehuels/planbook/pkg/errors"
)

// Document is the declared, not yet rendered, planner: ordered pages plus
// the groups, page sets and outline entries that reference them.
type Document struct {
	Title string

	pages   []*PageDeclaration
	seen    map[*PageDeclaration]bool
	groups  []*GroupDeclaration
	sets    []*PageSet
	outline []*OutlineEntry
}

// New creates an empty document.
func New(title string) *Document {
	return &Document{Title: title, seen: make(map[*PageDeclaration]bool)}
}

// AddPage appends pages in document order. A page already in the document
// is not added again.
func (d *Document) AddPage(pages ...*PageDeclaration) *Document {
	for _, p := range pages {
		if p == nil || d.seen[p] {
			continue
		}
		d.seen[p] = true
		d.pages = append(d.pages, p)
	}
	return d
}

// AddGroup records a group and appends its members that are not yet part of
// the document.
func (d *Document) AddGroup(g *GroupDeclaration) *Document {
	d.groups = append(d.groups, g)
	return d.AddPage(g.Pages...)
}

// AddSet records a page set and appends its current members that are not yet
// part of the document. Pages added to the set later must be added to the
// document as well. Unfinalized sets are finalized by [Builder.Build].
func (d *Document) AddSet(s *PageSet) *Document {
	d.sets = append(d.sets, s)
	return d.AddPage(s.Pages()...)
}

// AddOutline appends a top-level outline entry pointing at key and returns
// it so children can be attached.
func (d *Document) AddOutline(title, key string, children ...*OutlineEntry) *OutlineEntry {
	e := &OutlineEntry{Title: title, Key: key, Children: children}
	d.outline = append(d.outline, e)
	return e
}

// Pages returns the pages in document order.
func (d *Document) Pages() []*PageDeclaration { return d.pages }

// Groups returns the declared groups.
func (d *Document) Groups() []*GroupDeclaration { return d.groups }

// Sets returns the declared page sets.
func (d *Document) Sets() []*PageSet { return d.sets }

// Outline returns the explicit outline entries.
func (d *Document) Outline() []*OutlineEntry { return d.outline }

// Len returns the number of pages.
func (d *Document) Len() int { return len(d.pages) }

// Validate checks every declaration and reports the first problem, naming the
// offending page, group or set:
//
//   - invalid page types, IDs or parameter names
//   - duplicate destination keys
//   - invalid or duplicate group and set names
//   - group or set members that are not part of the document
func (d *Document) Validate() error {
	keys := make(map[string]int, len(d.pages))
	for i, p := range d.pages {
		if err := p.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDeclaration, err, "page %d", i+1)
		}
		key := p.DestinationKey()
		if prev, ok := keys[key]; ok {
			return errors.New(errors.ErrCodeDuplicateDest,
				"destination %q declared by pages %d and %d", key, prev+1, i+1)
		}
		keys[key] = i
	}

	names := make(map[string]bool)
	for _, g := range d.groups {
		if err := errors.ValidateIdentifier("group", g.Name); err != nil {
			return err
		}
		if names["group:"+g.Name] {
			return errors.New(errors.ErrCodeInvalidDeclaration, "group %q declared twice", g.Name)
		}
		names["group:"+g.Name] = true
		for _, p := range g.Pages {
			if !d.seen[p] {
				return errors.New(errors.ErrCodeInvalidDeclaration,
					"group %q member %q is not a page of the document", g.Name, p.DestinationKey())
			}
		}
	}
	for _, s := range d.sets {
		if err := errors.ValidateIdentifier("page set", s.Name); err != nil {
			return err
		}
		if names["set:"+s.Name] {
			return errors.New(errors.ErrCodeInvalidDeclaration, "page set %q declared twice", s.Name)
		}
		names["set:"+s.Name] = true
		for _, p := range s.Pages() {
			if !d.seen[p] {
				return errors.New(errors.ErrCodeInvalidDeclaration,
					"page set %q member %q is not a page of the document", s.Name, p.DestinationKey())
			}
		}
	}
	return nil
}

// Register runs pass 1 over the document: every page, then every group, is
// recorded in a new registry which is sealed before it is returned.
func (d *Document) Register() (*Registry, error) {
	reg := NewRegistry()
	for _, p := range d.pages {
		if _, err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	for _, g := range d.groups {
		if err := reg.RegisterGroup(g); err != nil {
			return nil, err
		}
	}
	reg.Seal()
	return reg, nil
}
