package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table formatting constants.
const (
	tablePadding     = 2
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	minExcerptWidth  = 10
	ellipsis         = "…"
)

// TableRow is one decoration in a listing.
type TableRow struct {
	Location string
	Kind     string
	Class    string
	Excerpt  string
}

// TableFormatter lays decorations out as aligned columns.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter. A non-positive termWidth uses 100.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders rows under a header. Rows are separated into groups by a
// light rule whenever groupBreak reports true for a row.
func (t *TableFormatter) Format(rows []TableRow, groupBreak func(i int) bool) string {
	if len(rows) == 0 {
		return ""
	}

	locW, kindW, classW := len("LOC"), len("KIND"), len("CLASS")
	for _, row := range rows {
		locW = max(locW, runewidth.StringWidth(row.Location))
		kindW = max(kindW, runewidth.StringWidth(row.Kind))
		classW = max(classW, runewidth.StringWidth(row.Class))
	}
	excerptW := max(t.termWidth-locW-kindW-classW-3*tablePadding, minExcerptWidth)
	total := locW + kindW + classW + excerptW + 3*tablePadding

	var builder strings.Builder
	header := fmt.Sprintf("%s%s%s%s",
		pad("LOC", locW+tablePadding), pad("KIND", kindW+tablePadding),
		pad("CLASS", classW+tablePadding), "TEXT")
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for i, row := range rows {
		if i > 0 && groupBreak != nil && groupBreak(i) {
			builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)) + "\n")
		}
		builder.WriteString(t.styles.Location.Render(pad(row.Location, locW+tablePadding)))
		builder.WriteString(t.styles.Kind.Render(pad(row.Kind, kindW+tablePadding)))
		builder.WriteString(t.styles.Class.Render(pad(row.Class, classW+tablePadding)))
		builder.WriteString(t.styles.Excerpt.Render(Truncate(row.Excerpt, excerptW)))
		builder.WriteString("\n")
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")
	return builder.String()
}

// pad right-pads s with spaces to width display cells.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Truncate shortens s to at most width display cells, marking the cut.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
