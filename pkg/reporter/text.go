package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/mddecor/internal/ui/pretty"
)

// TextReporter writes one decoration per line:
//
//	path:line:col  kind  class  "text"
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report: %w", err)
		}
		if file.Err != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Err)))
			continue
		}
		for _, d := range file.Set.All() {
			fmt.Fprintf(r.bw, "%s:%s  %s  %s  %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Location.Render(location(file.Doc, d)),
				r.styles.Kind.Render(d.Kind.String()),
				r.styles.Class.Render(d.Class),
				r.styles.Excerpt.Render(strconv.Quote(excerpt(file.Doc, d))),
			)
		}
	}

	return result.Total(), nil
}
