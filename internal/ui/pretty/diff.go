package pretty

import (
	"strings"
)

// FormatDiff colours a unified diff line by line.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	var builder strings.Builder
	for line := range strings.Lines(diff) {
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			builder.WriteString(s.DiffHeader.Render(text))
		case strings.HasPrefix(text, "@@"):
			builder.WriteString(s.DiffHunk.Render(text))
		case strings.HasPrefix(text, "+"):
			builder.WriteString(s.DiffAdd.Render(text))
		case strings.HasPrefix(text, "-"):
			builder.WriteString(s.DiffRemove.Render(text))
		default:
			builder.WriteString(s.DiffContext.Render(text))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
