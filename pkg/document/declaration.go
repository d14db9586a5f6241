package document

import (
	"github.com/matzehuels/planbook/pkg/errors"
)

// PageDeclaration declares one page of the document. It is immutable after
// construction except for a single [PageDeclaration.SetContext] call made
// when its page set is finalized.
type PageDeclaration struct {
	Type         string // page type tag, e.g. "weekly"
	ID           string // explicit destination key; empty derives one
	Params       Params // opaque parameters, e.g. {"week": 12}
	OutlineTitle string // bookmark title; empty keeps the page out of the outline

	ctx *PageContext
}

// PageOption configures a [PageDeclaration].
type PageOption func(*PageDeclaration)

// WithID sets an explicit destination key.
func WithID(id string) PageOption {
	return func(p *PageDeclaration) { p.ID = id }
}

// WithOutline sets the outline title.
func WithOutline(title string) PageOption {
	return func(p *PageDeclaration) { p.OutlineTitle = title }
}

// NewPage declares a page. The params map is copied.
func NewPage(pageType string, params Params, opts ...PageOption) *PageDeclaration {
	p := &PageDeclaration{Type: pageType, Params: params.Clone()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DestinationKey returns the explicit ID if set, otherwise the key derived
// from the type and params.
func (p *PageDeclaration) DestinationKey() string {
	if p.ID != "" {
		return p.ID
	}
	return DestinationKey(p.Type, p.Params)
}

// SetContext attaches the page's pagination context. A second call fails with
// a STATE_FINALIZED error.
func (p *PageDeclaration) SetContext(c PageContext) error {
	if p.ctx != nil {
		return errors.New(errors.ErrCodeFinalized,
			"page %q already has a pagination context from set %q", p.DestinationKey(), p.ctx.Set)
	}
	p.ctx = &c
	return nil
}

// Context returns the pagination context, if the page belongs to a finalized
// set.
func (p *PageDeclaration) Context() (PageContext, bool) {
	if p.ctx == nil {
		return PageContext{}, false
	}
	return *p.ctx, true
}

// Validate checks the type, explicit ID, parameter names and values.
func (p *PageDeclaration) Validate() error {
	if err := errors.ValidateIdentifier("page type", p.Type); err != nil {
		return err
	}
	if p.ID != "" {
		if err := errors.ValidateDestinationID(p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDeclaration, err, "page %s", p.Type)
		}
	}
	for k := range p.Params {
		if err := errors.ValidateIdentifier("parameter", k); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDeclaration, err, "page %q", p.DestinationKey())
		}
	}
	if err := p.Params.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDeclaration, err, "page %q", p.DestinationKey())
	}
	return nil
}

// String returns the destination key.
func (p *PageDeclaration) String() string { return p.DestinationKey() }

// GroupDeclaration is an ordered set of pages sharing one navigation control,
// such as a tab strip. The pages are the same values that appear in the
// document's page list.
type GroupDeclaration struct {
	Name  string
	Cycle bool // advancing past the last member wraps to the first
	Pages []*PageDeclaration
}

// NewGroup declares a group with the given members.
func NewGroup(name string, cycle bool, pages ...*PageDeclaration) *GroupDeclaration {
	return &GroupDeclaration{Name: name, Cycle: cycle, Pages: pages}
}

// Add appends members.
func (g *GroupDeclaration) Add(pages ...*PageDeclaration) {
	g.Pages = append(g.Pages, pages...)
}

// Keys returns the members' destination keys in order.
func (g *GroupDeclaration) Keys() []string {
	keys := make([]string, len(g.Pages))
	for i, p := range g.Pages {
		keys[i] = p.DestinationKey()
	}
	return keys
}
