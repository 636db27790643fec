package editor

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mddecor/pkg/mdast"
)

// DefaultTabWidth is the tab stop interval.
const DefaultTabWidth = 4

// Grid maps monospace screen cells to document offsets. Rows are 0-based
// and count from the first visible line; columns are 0-based cells, with
// wide runes taking two cells.
type Grid struct {
	// TopLine is the 1-based document line shown on row 0.
	TopLine int

	// TabWidth is the tab stop interval in cells.
	TabWidth int

	// Gutter is the number of cells left of the text, such as line numbers.
	Gutter int

	cond *runewidth.Condition
}

// NewGrid returns a grid showing the document from line 1.
func NewGrid() Grid {
	return Grid{TopLine: 1, TabWidth: DefaultTabWidth, cond: runewidth.NewCondition()}
}

// OffsetAt resolves the cell (x, y). A point past the end of a line
// resolves to the line end; points in the gutter or below the last line do
// not resolve.
func (g *Grid) OffsetAt(doc mdast.Document, x, y int) (int, bool) {
	top := max(g.TopLine, 1)
	n := top + y
	if y < 0 || n > doc.LineCount() {
		return 0, false
	}
	col := x - g.Gutter
	if col < 0 {
		return 0, false
	}

	line := doc.Line(n)
	cell := 0
	for i, r := range line.Text {
		width := g.width(r, cell)
		if col < cell+width {
			return line.StartOffset + i, true
		}
		cell += width
	}
	return line.EndOffset(), true
}

// CellOf returns the (x, y) cell where offset is drawn, the inverse of
// OffsetAt for offsets on visible lines.
func (g *Grid) CellOf(doc mdast.Document, offset int) (int, int, bool) {
	line, ok := mdast.LineContaining(doc, offset)
	top := max(g.TopLine, 1)
	if !ok || line.Number < top {
		return 0, 0, false
	}

	cell := 0
	text := line.Text[:offset-line.StartOffset]
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		cell += g.width(r, cell)
		text = text[size:]
	}
	return g.Gutter + cell, line.Number - top, true
}

// width returns the cells rune r occupies when drawn at cell.
func (g *Grid) width(r rune, cell int) int {
	if r == '\t' {
		tab := g.TabWidth
		if tab <= 0 {
			tab = DefaultTabWidth
		}
		return tab - cell%tab
	}
	cond := g.cond
	if cond == nil {
		cond = runewidth.NewCondition()
		g.cond = cond
	}
	return cond.RuneWidth(r)
}
