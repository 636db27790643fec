package decor

import "slices"

// Set is an immutable, ordered collection of decorations. Entries are
// sorted by (From, To) and contain no exact duplicates.
type Set struct {
	items []Decoration
}

// newSet sorts and deduplicates items in place and wraps them.
func newSet(items []Decoration) Set {
	slices.SortStableFunc(items, compare)
	items = slices.CompactFunc(items, func(a, b Decoration) bool {
		return compare(a, b) == 0 && a.Line == b.Line && sameCheckbox(a.Checkbox, b.Checkbox)
	})
	return Set{items: slices.Clip(items)}
}

// Len returns the number of decorations.
func (s Set) Len() int {
	return len(s.items)
}

// At returns the i-th decoration.
func (s Set) At(i int) Decoration {
	return s.items[i]
}

// All returns a copy of the decorations in order.
func (s Set) All() []Decoration {
	return slices.Clone(s.items)
}

// OfKind returns the decorations of one kind, in order.
func (s Set) OfKind(kind Kind) []Decoration {
	var out []Decoration
	for _, d := range s.items {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Checkboxes returns every checkbox widget in document order.
func (s Set) Checkboxes() []Checkbox {
	var out []Checkbox
	for _, d := range s.items {
		if d.Checkbox != nil {
			out = append(out, *d.Checkbox)
		}
	}
	return out
}

// Overlapping returns decorations that touch [from, to). A zero-width
// decoration touches the range when its anchor lies inside it or equals
// from.
func (s Set) Overlapping(from, to int) []Decoration {
	var out []Decoration
	for _, d := range s.items {
		if d.From > to {
			break
		}
		if touches(d, from, to) {
			out = append(out, d)
		}
	}
	return out
}

func touches(d Decoration, from, to int) bool {
	if d.From == d.To {
		return d.From == from || (d.From > from && d.From < to)
	}
	return d.From < to && d.To > from
}

// Equal reports whether both sets hold the same decorations.
func (s Set) Equal(other Set) bool {
	return slices.EqualFunc(s.items, other.items, func(a, b Decoration) bool {
		return compare(a, b) == 0 && a.Line == b.Line && sameCheckbox(a.Checkbox, b.Checkbox)
	})
}

func sameCheckbox(a, b *Checkbox) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
