// Package block classifies document lines into block-level kinds.
//
// Classification is a pure function of a line's text and the fence state in
// effect before it. Precedence, highest first: fence boundary, heading, task
// item, bullet item, ordered item, blockquote, horizontal rule. A line gets at
// most one kind.
package block

import (
	"github.com/yaklabco/mddecor/pkg/fence"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// maxHeadingLevel is the deepest ATX heading; seven hashes is plain text.
const maxHeadingLevel = 6

// Kind is the block-level classification of a line.
type Kind int

const (
	None Kind = iota
	Heading
	Bullet
	Ordered
	Task
	Blockquote
	CodeFenceOpen
	CodeFenceClose
	CodeContent
	HorizontalRule
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Heading:
		return "heading"
	case Bullet:
		return "bullet"
	case Ordered:
		return "ordered"
	case Task:
		return "task"
	case Blockquote:
		return "blockquote"
	case CodeFenceOpen:
		return "code-fence-open"
	case CodeFenceClose:
		return "code-fence-close"
	case CodeContent:
		return "code-content"
	case HorizontalRule:
		return "horizontal-rule"
	default:
		return "unknown"
	}
}

// IsCode reports whether the kind belongs to a fenced code region.
// Inline markdown is never matched on such lines.
func (k Kind) IsCode() bool {
	return k == CodeFenceOpen || k == CodeFenceClose || k == CodeContent
}

// LineInfo is the classification of one line. All offsets are relative to
// the start of the line; callers shift them to document offsets.
type LineInfo struct {
	Kind Kind

	// Level is the heading level (1-6) for Heading lines.
	Level int

	// Marker is the syntax prefix of the line: "## " for headings, "> " for
	// quotes, "- " or "1. " for list items, and the full "- [ ] " token for
	// tasks. Empty for other kinds.
	Marker mdast.SourceRange

	// Checked is the task state: true for [x] or [X].
	Checked bool

	// CheckboxAnchor is where a checkbox element is rendered (start of the
	// task token). Only meaningful for Task lines.
	CheckboxAnchor int

	// CheckboxBracket is the offset of the '[' of the task token, the start
	// of the three characters a toggle rewrites. Only meaningful for Task lines.
	CheckboxBracket int

	// Fence holds the marker run and info string of fence boundary lines.
	Fence fence.Marker
}

// Classify returns the classification of line given the fence state before
// it, together with the fence state for the following line.
func Classify(line string, state fence.State) (LineInfo, fence.State) {
	role, next, marker := state.StepMarker(line)
	switch role {
	case fence.Open:
		return LineInfo{Kind: CodeFenceOpen, Fence: marker}, next
	case fence.Close:
		return LineInfo{Kind: CodeFenceClose, Fence: marker}, next
	case fence.Content:
		return LineInfo{Kind: CodeContent}, next
	case fence.Outside:
	}

	for _, classify := range classifiers {
		if info, ok := classify(line); ok {
			return info, next
		}
	}
	return LineInfo{Kind: None}, next
}

// classifiers run in precedence order after fence handling.
//
//nolint:gochecknoglobals // Read-only precedence table.
var classifiers = []func(string) (LineInfo, bool){
	heading,
	task,
	bullet,
	ordered,
	blockquote,
	horizontalRule,
}

// heading matches `#{1,6}` followed by a space or tab at the start of the line.
func heading(line string) (LineInfo, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel || level >= len(line) || !isBlank(line[level]) {
		return LineInfo{}, false
	}
	return LineInfo{Kind: Heading, Level: level, Marker: mdast.Span(0, level+1)}, true
}

// task matches an optionally indented bullet followed by [ ], [x] or [X].
func task(line string) (LineInfo, bool) {
	indent := leadingBlanks(line)
	pos := indent
	if pos >= len(line) || !isBulletMarker(line[pos]) {
		return LineInfo{}, false
	}
	pos++

	gap := leadingBlanks(line[pos:])
	if gap == 0 {
		return LineInfo{}, false
	}
	pos += gap

	const tokenLen = 3
	if pos+tokenLen > len(line) || line[pos] != '[' || line[pos+2] != ']' {
		return LineInfo{}, false
	}
	bracket := pos
	checked := false
	switch line[pos+1] {
	case ' ':
	case 'x', 'X':
		checked = true
	default:
		return LineInfo{}, false
	}

	end := pos + tokenLen
	if end < len(line) {
		if !isBlank(line[end]) {
			return LineInfo{}, false
		}
		end++
	}

	return LineInfo{
		Kind:            Task,
		Marker:          mdast.Span(indent, end),
		Checked:         checked,
		CheckboxAnchor:  indent,
		CheckboxBracket: bracket,
	}, true
}

// bullet matches an optionally indented -, * or + followed by a space or tab.
func bullet(line string) (LineInfo, bool) {
	indent := leadingBlanks(line)
	if indent+1 >= len(line) || !isBulletMarker(line[indent]) || !isBlank(line[indent+1]) {
		return LineInfo{}, false
	}
	return LineInfo{Kind: Bullet, Marker: mdast.Span(indent, indent+2)}, true
}

// ordered matches optionally indented digits, a period, then a space or tab.
func ordered(line string) (LineInfo, bool) {
	indent := leadingBlanks(line)
	pos := indent
	for pos < len(line) && line[pos] >= '0' && line[pos] <= '9' {
		pos++
	}
	if pos == indent || pos+1 >= len(line) || line[pos] != '.' || !isBlank(line[pos+1]) {
		return LineInfo{}, false
	}
	return LineInfo{Kind: Ordered, Marker: mdast.Span(indent, pos+2)}, true
}

// blockquote matches an optionally indented '>' and one optional space.
func blockquote(line string) (LineInfo, bool) {
	indent := leadingBlanks(line)
	if indent >= len(line) || line[indent] != '>' {
		return LineInfo{}, false
	}
	end := indent + 1
	if end < len(line) && line[end] == ' ' {
		end++
	}
	return LineInfo{Kind: Blockquote, Marker: mdast.Span(indent, end)}, true
}

// horizontalRule matches three or more of one of -, * or _ from the start of
// the line, followed only by whitespace.
func horizontalRule(line string) (LineInfo, bool) {
	if len(line) == 0 || (line[0] != '-' && line[0] != '*' && line[0] != '_') {
		return LineInfo{}, false
	}
	rule := line[0]
	width := 1
	for width < len(line) && line[width] == rule {
		width++
	}
	if width < 3 {
		return LineInfo{}, false
	}
	for _, c := range []byte(line[width:]) {
		if !isBlank(c) {
			return LineInfo{}, false
		}
	}
	return LineInfo{Kind: HorizontalRule}, true
}

func isBulletMarker(c byte) bool {
	return c == '-' || c == '*' || c == '+'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func leadingBlanks(s string) int {
	n := 0
	for n < len(s) && isBlank(s[n]) {
		n++
	}
	return n
}
