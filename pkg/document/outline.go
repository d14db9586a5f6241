package document

import (
	"sort"
)

// OutlineEntry is a declared bookmark pointing at a destination key.
type OutlineEntry struct {
	Title    string
	Key      string
	Children []*OutlineEntry
}

// AddChild appends a child entry and returns it.
func (e *OutlineEntry) AddChild(title, key string) *OutlineEntry {
	c := &OutlineEntry{Title: title, Key: key}
	e.Children = append(e.Children, c)
	return c
}

// OutlineItem is a resolved bookmark.
type OutlineItem struct {
	Title    string         `json:"title"`
	Key      string         `json:"key"`
	Page     int            `json:"page"`
	Children []*OutlineItem `json:"children,omitempty"`
}

// Outline is the resolved bookmark tree of a built document.
type Outline struct {
	Items []*OutlineItem `json:"items"`
}

// Len returns the total number of items in the tree.
func (o *Outline) Len() int {
	n := 0
	o.Walk(func(*OutlineItem, int) { n++ })
	return n
}

// Walk visits every item depth first.
func (o *Outline) Walk(fn func(item *OutlineItem, depth int)) {
	var walk func(items []*OutlineItem, depth int)
	walk = func(items []*OutlineItem, depth int) {
		for _, it := range items {
			fn(it, depth)
			walk(it.Children, depth+1)
		}
	}
	walk(o.Items, 0)
}

// BuildOutline resolves the document's outline against a registry.
//
// The tree consists of the explicit entries added with
// [Document.AddOutline], followed by one top-level item for every page with
// an OutlineTitle whose key no explicit entry uses. Top-level items are
// ordered by page number; children keep their declared order. Entries whose
// key does not resolve are dropped along with their children, and their keys
// are returned as missing.
func BuildOutline(doc *Document, reg *Registry) (*Outline, []string) {
	var missing []string
	used := make(map[string]bool)

	var resolve func(entries []*OutlineEntry) []*OutlineItem
	resolve = func(entries []*OutlineEntry) []*OutlineItem {
		var items []*OutlineItem
		for _, e := range entries {
			used[e.Key] = true
			dest := reg.Lookup(e.Key)
			if dest == nil {
				missing = append(missing, e.Key)
				continue
			}
			items = append(items, &OutlineItem{
				Title:    e.Title,
				Key:      e.Key,
				Page:     dest.Page,
				Children: resolve(e.Children),
			})
		}
		return items
	}

	items := resolve(doc.Outline())
	for _, p := range doc.Pages() {
		key := p.DestinationKey()
		if p.OutlineTitle == "" || used[key] {
			continue
		}
		if dest := reg.Lookup(key); dest != nil {
			items = append(items, &OutlineItem{Title: p.OutlineTitle, Key: key, Page: dest.Page})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Page < items[j].Page })
	return &Outline{Items: items}, missing
}
