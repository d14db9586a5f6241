package document

// Page types and parameters with built-in navigation helpers.
const (
	TypeWeekly = "weekly"
	ParamWeek  = "week"
)

// Resolver answers pass-2 link queries against a sealed [Registry], relative
// to a current page. Every method returns nil for destinations that do not
// exist; none of them fail.
type Resolver struct {
	reg     *Registry
	current *DestinationInfo
}

// Current returns the destination of the page being rendered, or nil.
func (r *Resolver) Current() *DestinationInfo { return r.current }

// Resolve looks a page up by type and exact params. Params that could not
// have been registered resolve to nil.
func (r *Resolver) Resolve(pageType string, params Params) *DestinationInfo {
	if params.Validate() != nil {
		return nil
	}
	return r.reg.byType[DestinationKey(pageType, params)]
}

// ResolveKey looks a page up by destination key.
func (r *Resolver) ResolveKey(key string) *DestinationInfo {
	return r.reg.byKey[key]
}

// Page returns the destination with the given 1-based page number.
func (r *Resolver) Page(n int) *DestinationInfo {
	if n < 1 || n > len(r.reg.pages) {
		return nil
	}
	return r.reg.pages[n-1]
}

// PrevPage returns the page before the current one. It is nil on page 1.
func (r *Resolver) PrevPage() *DestinationInfo {
	if r.current == nil {
		return nil
	}
	return r.Page(r.current.Page - 1)
}

// NextPage returns the page after the current one. It is nil on the last
// page.
func (r *Resolver) NextPage() *DestinationInfo {
	if r.current == nil {
		return nil
	}
	return r.Page(r.current.Page + 1)
}

// DestForPrevWeek returns the weekly page for week-1. There is no
// wraparound: week 1 has no previous week.
func (r *Resolver) DestForPrevWeek(week int) *DestinationInfo {
	if week <= 1 {
		return nil
	}
	return r.Resolve(TypeWeekly, Params{ParamWeek: week - 1})
}

// DestForNextWeek returns the weekly page for week+1, or nil after the last
// declared week.
func (r *Resolver) DestForNextWeek(week int) *DestinationInfo {
	return r.Resolve(TypeWeekly, Params{ParamWeek: week + 1})
}

// PrevWeek is DestForPrevWeek for the current page's week.
func (r *Resolver) PrevWeek() *DestinationInfo {
	week, ok := r.currentWeek()
	if !ok {
		return nil
	}
	return r.DestForPrevWeek(week)
}

// NextWeek is DestForNextWeek for the current page's week.
func (r *Resolver) NextWeek() *DestinationInfo {
	week, ok := r.currentWeek()
	if !ok {
		return nil
	}
	return r.DestForNextWeek(week)
}

func (r *Resolver) currentWeek() (int, bool) {
	if r.current == nil {
		return 0, false
	}
	return r.current.Params.Int(ParamWeek)
}

// NextInCycle returns the member of group that follows currentKey. A cyclic
// group wraps from the last member to the first; a non-cyclic group returns
// nil after the last member. It returns nil when the group is unknown or
// currentKey is not a member.
func (r *Resolver) NextInCycle(group, currentKey string) *DestinationInfo {
	g, ok := r.reg.groups[group]
	if !ok || len(g.keys) == 0 {
		return nil
	}
	for i, key := range g.keys {
		if key != currentKey {
			continue
		}
		next := i + 1
		if next == len(g.keys) {
			if !g.cycle {
				return nil
			}
			next = 0
		}
		return r.ResolveKey(g.keys[next])
	}
	return nil
}

// NextInGroup is NextInCycle for the current page.
func (r *Resolver) NextInGroup(group string) *DestinationInfo {
	if r.current == nil {
		return nil
	}
	return r.NextInCycle(group, r.current.Key)
}

// Group returns the resolvable members of a group in declaration order.
func (r *Resolver) Group(name string) []*DestinationInfo {
	g, ok := r.reg.groups[name]
	if !ok {
		return nil
	}
	out := make([]*DestinationInfo, 0, len(g.keys))
	for _, key := range g.keys {
		if d := r.ResolveKey(key); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// InGroup reports whether the current page is a member of group.
func (r *Resolver) InGroup(group string) bool {
	if r.current == nil {
		return false
	}
	g, ok := r.reg.groups[group]
	if !ok {
		return false
	}
	for _, key := range g.keys {
		if key == r.current.Key {
			return true
		}
	}
	return false
}
