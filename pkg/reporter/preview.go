package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mddecor/internal/ui/pretty"
)

// PreviewReporter paints each document with its decorations applied.
type PreviewReporter struct {
	opts    Options
	styles  *pretty.Styles
	preview *pretty.Preview
	bw      *bufio.Writer
}

// NewPreviewReporter creates a new preview reporter.
func NewPreviewReporter(opts Options) *PreviewReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	preview := pretty.NewPreview(styles, opts.Classes, opts.CodeStyle)
	preview.LineNumbers = opts.LineNumbers

	return &PreviewReporter{
		opts:    opts,
		styles:  styles,
		preview: preview,
		bw:      bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *PreviewReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	multi := len(result.Files) > 1
	for i, file := range result.Files {
		if file.Err != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Err)))
			continue
		}
		if multi {
			if i > 0 {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintln(r.bw, r.styles.FilePath.Render("==> "+file.Path+" <=="))
		}
		fmt.Fprint(r.bw, r.preview.Render(file.Doc, file.Set, file.Viewport))
	}

	return result.Total(), nil
}
