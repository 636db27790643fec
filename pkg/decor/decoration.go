// Package decor builds the decoration set a host renders over a document.
//
// Decorations never change text. Each one addresses either a half-open
// byte range, a whole line, or a zero-width anchor where an interactive
// element such as a checkbox is inserted.
package decor

import (
	"cmp"
	"fmt"

	"github.com/yaklabco/mddecor/pkg/fix"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// Kind distinguishes the three decoration shapes. The numeric order is the
// tie-break used when two decorations share the same range.
type Kind int

const (
	// LineKind styles a whole line; From and To are the line start.
	LineKind Kind = iota
	// RangeKind styles the bytes [From, To).
	RangeKind
	// WidgetKind inserts an element at From; To equals From.
	WidgetKind
)

func (k Kind) String() string {
	switch k {
	case LineKind:
		return "line"
	case RangeKind:
		return "range"
	case WidgetKind:
		return "widget"
	default:
		return "unknown"
	}
}

// Decoration is a single annotation. Offsets are absolute byte offsets.
type Decoration struct {
	Kind  Kind
	From  int
	To    int
	Class string

	// Line is the 1-based line the decoration starts on.
	Line int

	// Checkbox is set for checkbox widgets.
	Checkbox *Checkbox
}

// Span returns [From, To).
func (d Decoration) Span() mdast.SourceRange {
	return mdast.Span(d.From, d.To)
}

func (d Decoration) String() string {
	return fmt.Sprintf("%s %d:%d %s", d.Kind, d.From, d.To, d.Class)
}

// compare orders decorations by (From, To), then kind, then class.
func compare(a, b Decoration) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	if c := cmp.Compare(a.To, b.To); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.Class, b.Class)
}

// Checkbox describes a rendered task checkbox. It is a plain value: the
// host owns whatever element draws it.
type Checkbox struct {
	// Anchor is where the element is inserted.
	Anchor int

	// EditPosition is the offset of the '[' of the "[ ]" token a toggle
	// rewrites.
	EditPosition int

	Checked bool

	// Token is the source text of the token when the checkbox was built:
	// "[ ]", "[x]" or "[X]". Empty disables the stale check.
	Token string
}

// checkboxTokenLen is the length of "[ ]" and "[x]".
const checkboxTokenLen = 3

// ToggleEdit returns the edit that flips the checkbox: exactly the three
// bytes at EditPosition are replaced. The edit expects Token at that
// position so a stale checkbox cannot rewrite text that has moved.
func (c Checkbox) ToggleEdit() fix.TextEdit {
	next := "[x]"
	if c.Checked {
		next = "[ ]"
	}
	return fix.TextEdit{
		StartOffset: c.EditPosition,
		EndOffset:   c.EditPosition + checkboxTokenLen,
		NewText:     next,
		Expect:      c.Token,
	}
}
