package document

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/planbook/pkg/errors"
)

func notesPages(n int) []*PageDeclaration {
	pages := make([]*PageDeclaration, n)
	for i := range pages {
		pages[i] = NewPage("notes", Params{"n": i + 1})
	}
	return pages
}

func TestPageSetFinalize(t *testing.T) {
	set := NewPageSet("notes", "Notes %page of %total", false)
	pages := notesPages(4)
	for _, p := range pages {
		if err := set.Add(p); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := pages[0].Context(); ok {
		t.Fatal("context must not exist before Finalize")
	}
	if err := set.Finalize(); err != nil {
		t.Fatal(err)
	}

	var got []PageContext
	for _, p := range pages {
		c, ok := p.Context()
		if !ok {
			t.Fatalf("page %s has no context", p)
		}
		got = append(got, c)
	}
	want := []PageContext{
		{Set: "notes", Position: 1, Total: 4, Label: "Notes 1 of 4"},
		{Set: "notes", Position: 2, Total: 4, Label: "Notes 2 of 4"},
		{Set: "notes", Position: 3, Total: 4, Label: "Notes 3 of 4"},
		{Set: "notes", Position: 4, Total: 4, Label: "Notes 4 of 4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("contexts mismatch (-want +got):\n%s", diff)
	}
	if !got[0].First() || got[0].Last() || !got[3].Last() || got[3].First() {
		t.Error("First/Last flags wrong")
	}
}

func TestPageSetPositionsContiguous(t *testing.T) {
	for n := 1; n <= 20; n++ {
		set := NewPageSet("s", "%page/%total", false)
		pages := notesPages(n)
		if err := set.Add(pages...); err != nil {
			t.Fatal(err)
		}
		if err := set.Finalize(); err != nil {
			t.Fatal(err)
		}
		for i, p := range pages {
			c, _ := p.Context()
			if c.Position != i+1 || c.Total != n {
				t.Fatalf("n=%d: page %d has %d/%d", n, i, c.Position, c.Total)
			}
			if want := fmt.Sprintf("%d/%d", i+1, n); c.Label != want {
				t.Fatalf("label = %q, want %q", c.Label, want)
			}
		}
	}
}

func TestPageSetStateErrors(t *testing.T) {
	set := NewPageSet("s", "", false)
	if err := set.Add(notesPages(2)...); err != nil {
		t.Fatal(err)
	}
	if err := set.Finalize(); err != nil {
		t.Fatal(err)
	}
	if err := set.Add(NewPage("late", nil)); !errors.Is(err, errors.ErrCodeFinalized) {
		t.Errorf("Add after Finalize = %v, want STATE_FINALIZED", err)
	}
	if err := set.Finalize(); !errors.Is(err, errors.ErrCodeFinalized) {
		t.Errorf("second Finalize = %v, want STATE_FINALIZED", err)
	}
	if !errors.IsState(set.Finalize()) {
		t.Error("finalize error should be a state error")
	}
}

func TestSetContextOnce(t *testing.T) {
	p := NewPage("notes", nil)
	if err := p.SetContext(PageContext{Set: "a", Position: 1, Total: 1}); err != nil {
		t.Fatal(err)
	}
	if err := p.SetContext(PageContext{Set: "b"}); !errors.Is(err, errors.ErrCodeFinalized) {
		t.Errorf("second SetContext = %v, want STATE_FINALIZED", err)
	}
	if c, _ := p.Context(); c.Set != "a" {
		t.Errorf("context changed to %q", c.Set)
	}

	other := NewPageSet("b", "", false)
	_ = other.Add(p)
	if err := other.Finalize(); !errors.Is(err, errors.ErrCodeFinalized) {
		t.Errorf("finalizing a set with a claimed page = %v", err)
	}
}

func TestPageSetDuplicateMember(t *testing.T) {
	pages := notesPages(2)
	set := NewPageSet("notes", "%page/%total", false)
	if err := set.Add(pages[0], pages[1], pages[0]); err != nil {
		t.Fatal(err)
	}

	err := set.Finalize()
	if !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
		t.Fatalf("Finalize() = %v, want INVALID_DECLARATION", err)
	}
	if set.Finalized() {
		t.Error("set locked after a failed Finalize")
	}
	for _, p := range pages {
		if c, ok := p.Context(); ok {
			t.Errorf("page %s got context %+v from a failed Finalize", p, c)
		}
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"%page of %total", "3 of 12"},
		{"%total-%page-%page", "12-3-3"},
		{"Notes", "Notes"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatLabel(tt.pattern, 3, 12); got != tt.want {
			t.Errorf("FormatLabel(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestPageSetNavigation(t *testing.T) {
	pages := notesPages(3)
	stranger := NewPage("other", nil)

	linear := NewPageSet("linear", "", false)
	_ = linear.Add(pages...)
	cyclic := NewPageSet("cyclic", "", true)
	_ = cyclic.Add(pages...)

	tests := []struct {
		name string
		got  *PageDeclaration
		want *PageDeclaration
	}{
		{"linear next", linear.Next(pages[0]), pages[1]},
		{"linear next at end", linear.Next(pages[2]), nil},
		{"linear prev at start", linear.Prev(pages[0]), nil},
		{"cyclic next wraps", cyclic.Next(pages[2]), pages[0]},
		{"cyclic prev wraps", cyclic.Prev(pages[0]), pages[2]},
		{"non member", cyclic.Next(stranger), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
