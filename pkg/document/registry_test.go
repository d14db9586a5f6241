package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/planbook/pkg/errors"
)

// weeklyDoc declares an index page followed by n weekly pages and a cyclic
// tab group over the first three weeks.
func weeklyDoc(n int) *Document {
	doc := New("test")
	doc.AddPage(NewPage("index", nil, WithOutline("Index")))
	var weeks []*PageDeclaration
	for w := 1; w <= n; w++ {
		weeks = append(weeks, NewPage(TypeWeekly, Params{ParamWeek: w}))
	}
	doc.AddPage(weeks...)
	doc.AddGroup(NewGroup("tabs", true, weeks[:min(3, n)]...))
	return doc
}

func mustRegister(t *testing.T, doc *Document) *Registry {
	t.Helper()
	reg, err := doc.Register()
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func mustResolver(t *testing.T, reg *Registry, key string) *Resolver {
	t.Helper()
	res, err := reg.Resolver(key)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func pageOf(d *DestinationInfo) int {
	if d == nil {
		return 0
	}
	return d.Page
}

func TestRegistryNumbersPagesInOrder(t *testing.T) {
	reg := mustRegister(t, weeklyDoc(4))
	var got []string
	for i, d := range reg.Destinations() {
		if d.Page != i+1 {
			t.Errorf("destination %s has page %d, want %d", d.Key, d.Page, i+1)
		}
		got = append(got, d.Key)
	}
	want := []string{"index", "weekly:week=1", "weekly:week=2", "weekly:week=3", "weekly:week=4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryDuplicateKey(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Register(NewPage("weekly", Params{"week": 1})); err != nil {
		t.Fatal(err)
	}
	_, err := reg.Register(NewPage("weekly", Params{"week": 1}))
	if !errors.Is(err, errors.ErrCodeDuplicateDest) {
		t.Fatalf("Register duplicate = %v, want DUPLICATE_DESTINATION", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d after rejected duplicate", reg.Len())
	}
}

func TestRegistryPhases(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Resolver(""); !errors.Is(err, errors.ErrCodeRegistryNotSealed) {
		t.Errorf("Resolver before Seal = %v, want REGISTRY_NOT_SEALED", err)
	}
	reg.Seal()
	if _, err := reg.Register(NewPage("index", nil)); !errors.Is(err, errors.ErrCodeRegistrySealed) {
		t.Errorf("Register after Seal = %v, want REGISTRY_SEALED", err)
	}
	if err := reg.RegisterGroup(NewGroup("g", false)); !errors.Is(err, errors.ErrCodeRegistrySealed) {
		t.Errorf("RegisterGroup after Seal = %v, want REGISTRY_SEALED", err)
	}
	if _, err := reg.Resolver("nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Resolver for unknown page = %v, want NOT_FOUND", err)
	}
}

func TestResolveExactParams(t *testing.T) {
	doc := New("test")
	monthly := NewPage("monthly", Params{"month": 3, "year": 2025})
	doc.AddPage(NewPage("index", nil), monthly)
	reg := mustRegister(t, doc)
	res := mustResolver(t, reg, "")

	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{"exact", Params{"month": 3, "year": 2025}, 2},
		{"different int type", Params{"month": int64(3), "year": 2025}, 2},
		{"different value", Params{"month": 4, "year": 2025}, 0},
		{"missing param", Params{"month": 3}, 0},
		{"extra param", Params{"month": 3, "year": 2025, "x": 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageOf(res.Resolve("monthly", tt.params)); got != tt.want {
				t.Errorf("Resolve() page = %d, want %d", got, tt.want)
			}
		})
	}
	if got := pageOf(res.ResolveKey(monthly.DestinationKey())); got != 2 {
		t.Errorf("ResolveKey() page = %d, want 2", got)
	}
	if res.ResolveKey("nope") != nil {
		t.Error("ResolveKey of unknown key should be nil")
	}
}

func TestResolveByTypeWithExplicitID(t *testing.T) {
	doc := New("test")
	doc.AddPage(
		NewPage("notes", nil, WithID("notes-a")),
		NewPage("notes", nil, WithID("notes-b")),
	)
	res := mustResolver(t, mustRegister(t, doc), "")
	if got := res.Resolve("notes", nil); got == nil || got.Key != "notes-a" {
		t.Errorf("Resolve(notes) = %v, want first declared page", got)
	}
	if got := pageOf(res.ResolveKey("notes-b")); got != 2 {
		t.Errorf("ResolveKey(notes-b) = %d, want 2", got)
	}
}

func TestWeekBoundaries(t *testing.T) {
	const weeks = 5
	reg := mustRegister(t, weeklyDoc(weeks))
	res := mustResolver(t, reg, "")

	if res.DestForPrevWeek(1) != nil {
		t.Error("DestForPrevWeek(1) should be nil")
	}
	if res.DestForNextWeek(weeks) != nil {
		t.Errorf("DestForNextWeek(%d) should be nil", weeks)
	}
	if got := res.DestForNextWeek(1); got == nil || got.Key != "weekly:week=2" {
		t.Errorf("DestForNextWeek(1) = %v", got)
	}
	if got := res.DestForPrevWeek(weeks); got == nil || got.Key != "weekly:week=4" {
		t.Errorf("DestForPrevWeek(%d) = %v", weeks, got)
	}

	first := mustResolver(t, reg, "weekly:week=1")
	if first.PrevWeek() != nil {
		t.Error("PrevWeek on week 1 should be nil")
	}
	if got := first.NextWeek(); got == nil || got.Page != 3 {
		t.Errorf("NextWeek on week 1 = %v", got)
	}
	index := mustResolver(t, reg, "index")
	if index.PrevWeek() != nil || index.NextWeek() != nil {
		t.Error("PrevWeek/NextWeek on a page without a week should be nil")
	}
}

func TestNextInCycle(t *testing.T) {
	reg := mustRegister(t, weeklyDoc(5))
	res := mustResolver(t, reg, "")
	m := []string{"weekly:week=1", "weekly:week=2", "weekly:week=3"}

	tests := []struct {
		current string
		want    string
	}{
		{m[0], m[1]},
		{m[1], m[2]},
		{m[2], m[0]},
	}
	for _, tt := range tests {
		got := res.NextInCycle("tabs", tt.current)
		if got == nil || got.Key != tt.want {
			t.Errorf("NextInCycle(tabs, %s) = %v, want %s", tt.current, got, tt.want)
		}
	}

	if got := res.NextInCycle("tabs", "weekly:week=5"); got != nil {
		t.Errorf("NextInCycle with a non-member = %v, want nil", got)
	}
	if got := res.NextInCycle("missing", m[0]); got != nil {
		t.Errorf("NextInCycle on unknown group = %v, want nil", got)
	}
}

func TestNextInCycleNonCyclic(t *testing.T) {
	doc := New("test")
	a, b := NewPage("a", nil), NewPage("b", nil)
	doc.AddGroup(NewGroup("line", false, a, b))
	res := mustResolver(t, mustRegister(t, doc), "b")
	if got := res.NextInGroup("line"); got != nil {
		t.Errorf("NextInGroup at end of non-cyclic group = %v, want nil", got)
	}
	if !res.InGroup("line") || res.InGroup("other") {
		t.Error("InGroup wrong")
	}
}

func TestResolverPages(t *testing.T) {
	reg := mustRegister(t, weeklyDoc(2))

	first := mustResolver(t, reg, "index")
	if first.PrevPage() != nil {
		t.Error("PrevPage on page 1 should be nil")
	}
	if got := pageOf(first.NextPage()); got != 2 {
		t.Errorf("NextPage = %d, want 2", got)
	}
	last := mustResolver(t, reg, "weekly:week=2")
	if last.NextPage() != nil {
		t.Error("NextPage on the last page should be nil")
	}
	if got := last.Current(); got == nil || got.Page != 3 {
		t.Errorf("Current() = %v", got)
	}
	if last.Page(0) != nil || last.Page(4) != nil {
		t.Error("Page out of range should be nil")
	}

	var keys []string
	for _, d := range last.Group("tabs") {
		keys = append(keys, d.Key)
	}
	if diff := cmp.Diff([]string{"weekly:week=1", "weekly:week=2"}, keys); diff != "" {
		t.Errorf("Group mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupDeclaredTwice(t *testing.T) {
	doc := New("test")
	p := NewPage("a", nil)
	doc.AddGroup(NewGroup("g", false, p))
	doc.AddGroup(NewGroup("g", true, p))
	if err := doc.Validate(); !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
		t.Errorf("Validate = %v, want INVALID_DECLARATION", err)
	}
	if _, err := doc.Register(); !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
		t.Errorf("Register = %v, want INVALID_DECLARATION", err)
	}
}
