// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Listing components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Kind     lipgloss.Style
	Class    lipgloss.Style
	Excerpt  lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Status
	Success lipgloss.Style
	Warning lipgloss.Style
	Failure lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	// Gutter is the line-number column of the preview.
	Gutter lipgloss.Style

	colorEnabled bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// ColorEnabled reports whether the styles emit ANSI sequences.
func (s *Styles) ColorEnabled() bool {
	return s.colorEnabled
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Kind:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Class:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Excerpt:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:   lipgloss.NewStyle().Bold(true),
		Gutter: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		colorEnabled: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		FilePath:       plain,
		Location:       plain,
		Kind:           plain,
		Class:          plain,
		Excerpt:        plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Success:        plain,
		Warning:        plain,
		Failure:        plain,
		Dim:            plain,
		Bold:           plain,
		Gutter:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
