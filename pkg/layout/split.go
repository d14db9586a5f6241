package layout

import (
	"github.com/matzehuels/planbook/pkg/errors"
)

// Split describes how one axis of a [Columns], [Rows] or [Grid] node is
// divided. Exactly one of Count or Sizes must be set.
type Split struct {
	Count int   // number of equal slices
	Sizes []int // explicit slice sizes, used verbatim in order
}

// Span is one slice of a split axis, relative to the start of the axis.
type Span struct {
	Offset int
	Size   int
}

// validate enforces the count/sizes exclusivity.
func (s Split) validate(name string) error {
	switch {
	case s.Count > 0 && len(s.Sizes) > 0:
		return errors.New(errors.ErrCodeInvalidLayout, "split %q: count and explicit sizes are mutually exclusive", name)
	case s.Count <= 0 && len(s.Sizes) == 0:
		return errors.New(errors.ErrCodeInvalidLayout, "split %q: either a positive count or explicit sizes is required", name)
	}
	for i, size := range s.Sizes {
		if size < 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "split %q: size %d is negative (%d)", name, i, size)
		}
	}
	return nil
}

// Len returns the number of slices.
func (s Split) Len() int {
	if len(s.Sizes) > 0 {
		return len(s.Sizes)
	}
	return s.Count
}

// Divide splits total grid units into spans separated by gap.
//
// In count mode the usable total (total minus all gaps) is divided equally:
// every slice gets floor(usable/count) and the last slice also receives the
// remainder, so the spans always sum to the usable total. In explicit mode
// the sizes are used verbatim with a running offset.
func (s Split) Divide(total, gap int) []Span {
	n := s.Len()
	if n == 0 {
		return nil
	}
	sizes := s.Sizes
	if len(sizes) == 0 {
		sizes = EqualSizes(max(0, total-gap*(n-1)), n)
	}

	spans := make([]Span, n)
	offset := 0
	for i, size := range sizes {
		spans[i] = Span{Offset: offset, Size: size}
		offset += size + gap
	}
	return spans
}

// EqualSizes divides total into count slices: the first count-1 get
// floor(total/count), the last gets the floor plus the remainder.
func EqualSizes(total, count int) []int {
	if count <= 0 {
		return nil
	}
	base := total / count
	rem := total - base*count
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = base
	}
	sizes[count-1] += rem
	return sizes
}
