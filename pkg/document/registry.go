package document

import (
	"github.com/matzehuels/planbook/pkg/errors"
)

// DestinationInfo is where a destination key points. It is created once per
// page during registration and never modified.
type DestinationInfo struct {
	Key    string `json:"key"`
	Page   int    `json:"page"` // 1-based page number
	Type   string `json:"type"`
	Params Params `json:"params,omitempty"`
}

type groupEntry struct {
	keys  []string
	cycle bool
}

// Registry is the destination index built in pass 1.
//
// Pages are registered in document order and numbered 1, 2, 3... without
// gaps. [Registry.Seal] ends the pass; afterwards the registry is read-only
// and safe for concurrent use by any number of [Resolver] values.
type Registry struct {
	byKey  map[string]*DestinationInfo
	byType map[string]*DestinationInfo
	pages  []*DestinationInfo
	groups map[string]groupEntry
	order  []string
	sealed bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]*DestinationInfo),
		byType: make(map[string]*DestinationInfo),
		groups: make(map[string]groupEntry),
	}
}

// Register assigns the next page number to p and indexes it by destination
// key and by type plus canonical params. Duplicate keys fail with
// DUPLICATE_DESTINATION; registering after [Registry.Seal] fails with
// REGISTRY_SEALED.
//
// When several pages share a type and params (distinguished only by explicit
// IDs), the type index keeps the first one.
func (r *Registry) Register(p *PageDeclaration) (*DestinationInfo, error) {
	if r.sealed {
		return nil, errors.New(errors.ErrCodeRegistrySealed, "cannot register %q: registry is sealed", p.DestinationKey())
	}
	if err := p.Params.Validate(); err != nil {
		return nil, err
	}
	key := p.DestinationKey()
	if prev, ok := r.byKey[key]; ok {
		return nil, errors.New(errors.ErrCodeDuplicateDest,
			"destination %q declared twice (pages %d and %d)", key, prev.Page, len(r.pages)+1)
	}
	info := &DestinationInfo{
		Key:    key,
		Page:   len(r.pages) + 1,
		Type:   p.Type,
		Params: p.Params.Clone(),
	}
	r.byKey[key] = info
	if typeKey := DestinationKey(p.Type, p.Params); r.byType[typeKey] == nil {
		r.byType[typeKey] = info
	}
	r.pages = append(r.pages, info)
	return info, nil
}

// RegisterGroup records a group's ordered member keys and cycle flag.
func (r *Registry) RegisterGroup(g *GroupDeclaration) error {
	if r.sealed {
		return errors.New(errors.ErrCodeRegistrySealed, "cannot register group %q: registry is sealed", g.Name)
	}
	if _, ok := r.groups[g.Name]; ok {
		return errors.New(errors.ErrCodeInvalidDeclaration, "group %q declared twice", g.Name)
	}
	r.groups[g.Name] = groupEntry{keys: g.Keys(), cycle: g.Cycle}
	r.order = append(r.order, g.Name)
	return nil
}

// Seal ends pass 1. Sealing twice is harmless.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether pass 1 has ended.
func (r *Registry) Sealed() bool { return r.sealed }

// Len returns the number of registered pages.
func (r *Registry) Len() int { return len(r.pages) }

// Destinations returns all destinations ordered by page number.
func (r *Registry) Destinations() []*DestinationInfo { return r.pages }

// GroupNames returns group names in registration order.
func (r *Registry) GroupNames() []string { return r.order }

// GroupKeys returns a group's member keys and cycle flag.
func (r *Registry) GroupKeys(name string) (keys []string, cycle bool, ok bool) {
	g, ok := r.groups[name]
	return g.keys, g.cycle, ok
}

// Lookup returns the destination for key, or nil. Unlike [Resolver] it works
// during pass 1, for diagnostics.
func (r *Registry) Lookup(key string) *DestinationInfo { return r.byKey[key] }

// Resolver returns a resolver bound to the page with the given key. An empty
// key yields a resolver without a current page. It fails with
// REGISTRY_NOT_SEALED before [Registry.Seal].
func (r *Registry) Resolver(currentKey string) (*Resolver, error) {
	if !r.sealed {
		return nil, errors.New(errors.ErrCodeRegistryNotSealed, "cannot resolve links before all pages are registered")
	}
	res := &Resolver{reg: r}
	if currentKey != "" {
		res.current = r.byKey[currentKey]
		if res.current == nil {
			return nil, errors.New(errors.ErrCodeNotFound, "current page %q is not registered", currentKey)
		}
	}
	return res, nil
}
