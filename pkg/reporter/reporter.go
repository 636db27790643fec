// Package reporter writes decoration sets in human and machine readable forms.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// File is the decoration result for one document.
type File struct {
	Path     string
	Doc      mdast.Document
	Set      decor.Set
	Viewport decor.Viewport
	Err      error
}

// Result collects the files of one run.
type Result struct {
	Files []File
}

// Total counts decorations across all files.
func (r *Result) Total() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, file := range r.Files {
		total += file.Set.Len()
	}
	return total
}

// Reporter formats and writes decoration results.
type Reporter interface {
	// Report writes formatted output for result and returns the number of
	// decorations written.
	Report(ctx context.Context, result *Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Classes.Prefix == "" && len(opts.Classes.Overrides) == 0 {
		opts.Classes = defaults.Classes
	}
	if opts.CodeStyle == "" {
		opts.CodeStyle = defaults.CodeStyle
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatPreview:
		return NewPreviewReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Position is a 1-based line and byte column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// positionOf converts a byte offset into a line and column.
func positionOf(doc mdast.Document, offset int) Position {
	line, ok := mdast.LineContaining(doc, offset)
	if !ok {
		return Position{}
	}
	return Position{Line: line.Number, Column: offset - line.StartOffset + 1}
}

// location renders "line:col" for zero-width decorations and
// "line:col-line:col" for ranges.
func location(doc mdast.Document, d decor.Decoration) string {
	start := positionOf(doc, d.From)
	if d.From == d.To {
		return fmt.Sprintf("%d:%d", start.Line, start.Column)
	}
	end := positionOf(doc, d.To)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Column, end.Line, end.Column)
}

// excerpt is the text a decoration covers; line decorations show their line.
func excerpt(doc mdast.Document, d decor.Decoration) string {
	switch d.Kind {
	case decor.RangeKind:
		return doc.TextBetween(d.From, d.To)
	case decor.WidgetKind:
		if d.Checkbox != nil {
			return d.Checkbox.Token
		}
		return ""
	default:
		return doc.Line(d.Line).Text
	}
}
