// Package inline finds inline markdown constructs on a single line of text.
//
// Every matcher has the same shape, func(line string) []Match, and knows
// nothing about the others. Conflicts between constructs (bold against
// italic, image against link) are settled in one place, Registry.Compose.
package inline

import "github.com/yaklabco/mddecor/pkg/mdast"

// Kind identifies an inline construct.
type Kind int

const (
	Code Kind = iota
	Bold
	Italic
	Strike
	Highlight
	Image
	Link
)

func (k Kind) String() string {
	switch k {
	case Code:
		return "code"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Strike:
		return "strike"
	case Highlight:
		return "highlight"
	case Image:
		return "image"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

// Match is one inline construct found on a line. Offsets are byte offsets
// relative to the line unless the match has been shifted.
//
// Wrapped constructs have an opening marker [From, ContentStart) and a
// closing marker [ContentEnd, To). For links and images the content is the
// link text or alt text and Parts holds the remaining sub-ranges.
type Match struct {
	Kind         Kind
	From         int
	To           int
	ContentStart int
	ContentEnd   int
	Parts        *LinkParts
}

// LinkParts are the independently styleable pieces of a link or image.
type LinkParts struct {
	// Bang is the offset of the leading '!' of an image, or -1 for links.
	Bang         int
	OpenBracket  int
	CloseBracket int
	OpenParen    int
	CloseParen   int
	URLStart     int
	URLEnd       int
}

// Span returns the whole construct.
func (m Match) Span() mdast.SourceRange {
	return mdast.Span(m.From, m.To)
}

// Content returns the text between the markers.
func (m Match) Content() mdast.SourceRange {
	return mdast.Span(m.ContentStart, m.ContentEnd)
}

// OpenMarker returns the leading syntax characters.
func (m Match) OpenMarker() mdast.SourceRange {
	return mdast.Span(m.From, m.ContentStart)
}

// CloseMarker returns the trailing syntax characters.
func (m Match) CloseMarker() mdast.SourceRange {
	return mdast.Span(m.ContentEnd, m.To)
}

// URL returns the URL span of a link or image, empty otherwise.
func (m Match) URL() mdast.SourceRange {
	if m.Parts == nil {
		return mdast.SourceRange{}
	}
	return mdast.Span(m.Parts.URLStart, m.Parts.URLEnd)
}

// Contains reports whether offset falls within [From, To).
func (m Match) Contains(offset int) bool {
	return offset >= m.From && offset < m.To
}

// Overlaps reports whether the two matches share at least one byte.
func (m Match) Overlaps(other Match) bool {
	return m.From < other.To && other.From < m.To
}

// Shift moves every offset of the match by delta, typically the start
// offset of the line it was found on.
func (m Match) Shift(delta int) Match {
	m.From += delta
	m.To += delta
	m.ContentStart += delta
	m.ContentEnd += delta
	if m.Parts != nil {
		parts := *m.Parts
		if parts.Bang >= 0 {
			parts.Bang += delta
		}
		parts.OpenBracket += delta
		parts.CloseBracket += delta
		parts.OpenParen += delta
		parts.CloseParen += delta
		parts.URLStart += delta
		parts.URLEnd += delta
		m.Parts = &parts
	}
	return m
}

func wrapped(kind Kind, from, to, markerLen int) Match {
	return Match{
		Kind:         kind,
		From:         from,
		To:           to,
		ContentStart: from + markerLen,
		ContentEnd:   to - markerLen,
	}
}
