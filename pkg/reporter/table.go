package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/mddecor/internal/ui/pretty"
	"github.com/yaklabco/mddecor/pkg/decor"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats decorations as one table per file, with a rule
// between source lines.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for i, file := range result.Files {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		if file.Err != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Err)))
			continue
		}

		items := file.Set.All()
		fmt.Fprintf(r.bw, "%s %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Dim.Render(fmt.Sprintf("(%d decorations)", len(items))))
		if len(items) == 0 {
			continue
		}

		fmt.Fprint(r.bw, r.formatter.Format(tableRows(file, items), func(i int) bool {
			return items[i].Line != items[i-1].Line
		}))
	}

	return result.Total(), nil
}

func tableRows(file File, items []decor.Decoration) []pretty.TableRow {
	rows := make([]pretty.TableRow, 0, len(items))
	for _, d := range items {
		rows = append(rows, pretty.TableRow{
			Location: location(file.Doc, d),
			Kind:     d.Kind.String(),
			Class:    d.Class,
			Excerpt:  excerpt(file.Doc, d),
		})
	}
	return rows
}

// getTerminalWidth returns the terminal width of writer, or defaultTermWidth.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
