package fix

import (
	"bytes"
	"strings"

	textdiff "github.com/shogoki/gotextdiff"
)

// Diff is a unified diff between two versions of a file.
type Diff struct {
	Path string
	Text string
}

// GenerateDiff returns the unified diff from original to modified, or nil
// when they are identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}
	text := textdiff.Diff("a/"+path, original, "b/"+path, modified)
	return &Diff{Path: path, Text: string(text)}
}

// HasChanges reports whether the diff contains any added or removed lines.
func (d *Diff) HasChanges() bool {
	if d == nil {
		return false
	}
	for _, line := range d.Lines() {
		if isChangeLine(line) {
			return true
		}
	}
	return false
}

// Lines returns the diff split into lines without terminators.
func (d *Diff) Lines() []string {
	if d == nil || d.Text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")
}

func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Text
}

func isChangeLine(line string) bool {
	if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
		return false
	}
	return strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-")
}
