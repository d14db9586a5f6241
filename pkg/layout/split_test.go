package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/planbook/pkg/errors"
)

func TestEqualSizes(t *testing.T) {
	tests := []struct {
		name  string
		total int
		count int
		want  []int
	}{
		{"even", 35, 7, []int{5, 5, 5, 5, 5, 5, 5}},
		{"remainder to last", 37, 7, []int{5, 5, 5, 5, 5, 5, 7}},
		{"single", 10, 1, []int{10}},
		{"total equals count", 4, 4, []int{1, 1, 1, 1}},
		{"zero count", 10, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, EqualSizes(tt.total, tt.count)); diff != "" {
				t.Errorf("EqualSizes(%d, %d) mismatch (-want +got):\n%s", tt.total, tt.count, diff)
			}
		})
	}
}

func TestEqualSizesSumExactly(t *testing.T) {
	for count := 1; count <= 12; count++ {
		for total := count; total <= 120; total++ {
			sizes := EqualSizes(total, count)
			sum := 0
			base := total / count
			for i, s := range sizes {
				sum += s
				if i < count-1 && s != base {
					t.Fatalf("EqualSizes(%d, %d)[%d] = %d, want %d", total, count, i, s, base)
				}
			}
			if sum != total {
				t.Fatalf("EqualSizes(%d, %d) sums to %d", total, count, sum)
			}
		}
	}
}

func TestSplitDivide(t *testing.T) {
	tests := []struct {
		name  string
		split Split
		total int
		gap   int
		want  []Span
	}{
		{
			name:  "equal",
			split: Split{Count: 3},
			total: 10,
			want:  []Span{{0, 3}, {3, 3}, {6, 4}},
		},
		{
			name:  "equal with gap",
			split: Split{Count: 3},
			total: 14,
			gap:   1,
			want:  []Span{{0, 4}, {5, 4}, {10, 4}},
		},
		{
			name:  "explicit",
			split: Split{Sizes: []int{2, 5, 1}},
			total: 100,
			want:  []Span{{0, 2}, {2, 5}, {7, 1}},
		},
		{
			name:  "explicit with gap",
			split: Split{Sizes: []int{2, 5}},
			total: 100,
			gap:   2,
			want:  []Span{{0, 2}, {4, 5}},
		},
		{
			name:  "gaps larger than total",
			split: Split{Count: 3},
			total: 2,
			gap:   2,
			want:  []Span{{0, 0}, {2, 0}, {4, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.split.Divide(tt.total, tt.gap)); diff != "" {
				t.Errorf("Divide mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitValidate(t *testing.T) {
	tests := []struct {
		name    string
		split   Split
		wantErr bool
	}{
		{"count only", Split{Count: 7}, false},
		{"sizes only", Split{Sizes: []int{1, 2}}, false},
		{"both", Split{Count: 2, Sizes: []int{1, 2}}, true},
		{"neither", Split{}, true},
		{"negative size", Split{Sizes: []int{1, -2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.split.validate("test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
		})
	}
}
