package document

import (
	"strings"
	"testing"

	"github.com/matzehuels/planbook/pkg/errors"
)

func TestDocumentAddPageDeduplicates(t *testing.T) {
	doc := New("test")
	a, b := NewPage("a", nil), NewPage("b", nil)
	doc.AddPage(a, b, a, nil)
	doc.AddGroup(NewGroup("g", true, b, a))
	if doc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", doc.Len())
	}
	if doc.Pages()[0] != a || doc.Pages()[1] != b {
		t.Error("document order changed")
	}
}

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Document
		code    errors.Code
		message string
	}{
		{
			name: "valid",
			build: func() *Document {
				d := New("ok")
				d.AddPage(NewPage("index", nil), NewPage("weekly", Params{"week": 1}))
				return d
			},
		},
		{
			name: "empty type",
			build: func() *Document {
				return New("x").AddPage(NewPage("", nil))
			},
			code:    errors.ErrCodeInvalidDeclaration,
			message: "page 1",
		},
		{
			name: "bad parameter name",
			build: func() *Document {
				return New("x").AddPage(NewPage("weekly", Params{"Week": 1}))
			},
			code:    errors.ErrCodeInvalidDeclaration,
			message: "weekly:Week=1",
		},
		{
			name: "bad id",
			build: func() *Document {
				return New("x").AddPage(NewPage("notes", nil, WithID("has space")))
			},
			code: errors.ErrCodeInvalidDeclaration,
		},
		{
			name: "duplicate key",
			build: func() *Document {
				return New("x").AddPage(
					NewPage("weekly", Params{"week": 1}),
					NewPage("index", nil),
					NewPage("weekly", Params{"week": 1}),
				)
			},
			code:    errors.ErrCodeDuplicateDest,
			message: `"weekly:week=1" declared by pages 1 and 3`,
		},
		{
			name: "id collides with derived key",
			build: func() *Document {
				return New("x").AddPage(NewPage("index", nil), NewPage("cover", nil, WithID("index")))
			},
			code: errors.ErrCodeDuplicateDest,
		},
		{
			name: "group member outside document",
			build: func() *Document {
				d := New("x")
				g := NewGroup("tabs", true)
				d.AddGroup(g)
				g.Add(NewPage("late", nil))
				return d
			},
			code:    errors.ErrCodeInvalidDeclaration,
			message: `member "late"`,
		},
		{
			name: "set member outside document",
			build: func() *Document {
				d := New("x")
				s := NewPageSet("notes", "", false)
				d.AddSet(s)
				_ = s.Add(NewPage("notes", nil))
				return d
			},
			code: errors.ErrCodeInvalidDeclaration,
		},
		{
			name: "bad group name",
			build: func() *Document {
				return New("x").AddGroup(NewGroup("Tabs", true))
			},
			code: errors.ErrCodeInvalidDeclaration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("Validate() = %v, want %s", err, tt.code)
			}
			if tt.message != "" && !strings.Contains(errors.UserMessage(err), tt.message) {
				t.Errorf("message %q does not mention %q", errors.UserMessage(err), tt.message)
			}
		})
	}
}

func TestBuildOutline(t *testing.T) {
	doc := New("test")
	index := NewPage("index", nil)
	months := []*PageDeclaration{
		NewPage("monthly", Params{"month": 1}, WithOutline("January")),
		NewPage("monthly", Params{"month": 2}, WithOutline("February")),
	}
	week := NewPage(TypeWeekly, Params{ParamWeek: 1})
	notes := NewPage("notes", nil, WithOutline("Notes"))
	doc.AddPage(index, months[0], week, months[1], notes)

	calendar := doc.AddOutline("Calendar", months[0].DestinationKey())
	calendar.AddChild("Week 1", week.DestinationKey())
	calendar.AddChild("Ghost", "weekly:week=99")
	doc.AddOutline("Missing", "nowhere", &OutlineEntry{Title: "Orphan", Key: "index"})

	outline, missing := BuildOutline(doc, mustRegister(t, doc))

	type flat struct {
		Title string
		Page  int
		Depth int
	}
	var got []flat
	outline.Walk(func(it *OutlineItem, depth int) {
		got = append(got, flat{it.Title, it.Page, depth})
	})
	want := []flat{
		{"Calendar", 2, 0},
		{"Week 1", 3, 1},
		{"February", 4, 0},
		{"Notes", 5, 0},
	}
	if len(got) != len(want) {
		t.Fatalf("outline = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if outline.Len() != 4 {
		t.Errorf("Len() = %d, want 4", outline.Len())
	}
	if strings.Join(missing, " ") != "weekly:week=99 nowhere" {
		t.Errorf("missing = %v", missing)
	}
}
