package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mddecor/pkg/decor"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Classes is the mapping the decorations were built with; the preview
	// needs it to turn classes back into roles.
	Classes decor.Classes

	// CodeStyle is the chroma style the preview paints code tokens with.
	CodeStyle string

	// LineNumbers prefixes preview lines with their numbers.
	LineNumbers bool

	// Compact disables JSON indentation.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:    os.Stdout,
		Format:    FormatText,
		Color:     "auto",
		Classes:   decor.DefaultClasses(),
		CodeStyle: "monokai",
	}
}
