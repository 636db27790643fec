package decor

import "fmt"

// OrderError reports a decoration that breaks the ordering contract the
// rendering layer relies on. It indicates a defect in the builder, never
// bad input.
type OrderError struct {
	Index  int
	Prev   Decoration
	Curr   Decoration
	Reason string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("decoration %d (%s) %s (previous: %s)", e.Index, e.Curr, e.Reason, e.Prev)
}

// Validate checks that decorations are well formed and non-decreasing in
// (From, To).
func Validate(items []Decoration) error {
	for i, curr := range items {
		var prev Decoration
		if i > 0 {
			prev = items[i-1]
		}
		switch {
		case curr.From < 0:
			return &OrderError{Index: i, Prev: prev, Curr: curr, Reason: "starts before the document"}
		case curr.To < curr.From:
			return &OrderError{Index: i, Prev: prev, Curr: curr, Reason: "is inverted"}
		case curr.Kind == RangeKind && curr.To == curr.From:
			return &OrderError{Index: i, Prev: prev, Curr: curr, Reason: "is an empty range"}
		case curr.Kind != RangeKind && curr.To != curr.From:
			return &OrderError{Index: i, Prev: prev, Curr: curr, Reason: "is not zero-width"}
		}
		if i > 0 && (curr.From < prev.From || (curr.From == prev.From && curr.To < prev.To)) {
			return &OrderError{Index: i, Prev: prev, Curr: curr, Reason: "is out of order"}
		}
	}
	return nil
}

// Validate checks the set against the ordering contract.
func (s Set) Validate() error {
	return Validate(s.items)
}
