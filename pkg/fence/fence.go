// Package fence tracks fenced code regions across the lines of a document.
//
// A fence opens on a line whose first non-whitespace characters are a run of
// three or more backticks or tildes. It closes on a later line that uses the
// same character, a run at least as long as the opening one, and nothing but
// whitespace after the run. A fence that never closes extends to the end of
// the document.
package fence

import "github.com/yaklabco/mddecor/pkg/mdast"

// minRun is the shortest marker run that opens or closes a fence.
const minRun = 3

// Role is what a line means to the fence tracker.
type Role int

const (
	// Outside is a line that is not inside a fence and does not open one.
	Outside Role = iota

	// Open is a line that opens a fence.
	Open

	// Close is a line that closes the current fence.
	Close

	// Content is a line inside a fence that does not close it.
	Content
)

func (r Role) String() string {
	switch r {
	case Outside:
		return "outside"
	case Open:
		return "open"
	case Close:
		return "close"
	case Content:
		return "content"
	default:
		return "unknown"
	}
}

// IsBoundary reports whether the role is an opening or closing fence line.
func (r Role) IsBoundary() bool {
	return r == Open || r == Close
}

// State is the fence state carried from one line to the next.
// The zero value is the state at the start of a document.
type State struct {
	// InFence is true while lines belong to a fenced region.
	InFence bool

	// Char is the marker character of the open fence: '`' or '~'.
	Char byte

	// Length is the marker run length of the open fence (3 or more).
	Length int
}

// Marker describes the fence run found on a boundary line,
// in line-relative byte offsets.
type Marker struct {
	// Run is the span of the repeated marker characters.
	Run mdast.SourceRange

	// Info is the span of the trimmed info string after an opening run.
	// Empty for closing lines and bare opening lines.
	Info mdast.SourceRange
}

// Step classifies line against the current state and returns the line's
// role together with the state for the next line. Step never mutates s.
func (s State) Step(line string) (Role, State) {
	role, next, _ := s.StepMarker(line)
	return role, next
}

// StepMarker is Step that also reports where the fence run sits on a
// boundary line.
func (s State) StepMarker(line string) (Role, State, Marker) {
	indent := leadingSpace(line)
	char, width := run(line[indent:])

	if !s.InFence {
		if width < minRun {
			return Outside, s, Marker{}
		}
		runEnd := indent + width
		infoStart := runEnd + leadingSpace(line[runEnd:])
		infoEnd := len(line) - trailingSpace(line[infoStart:])
		return Open, State{InFence: true, Char: char, Length: width}, Marker{
			Run:  mdast.Span(indent, runEnd),
			Info: mdast.Span(infoStart, infoEnd),
		}
	}

	if char == s.Char && width >= s.Length && isBlank(line[indent+width:]) {
		return Close, State{}, Marker{Run: mdast.Span(indent, indent+width)}
	}
	return Content, s, Marker{}
}

// Replay walks lines 1..upTo of doc from a fresh state and returns the state
// in effect before line upTo+1. upTo is clamped to the document.
func Replay(doc mdast.Document, upTo int) State {
	var state State
	upTo = min(upTo, doc.LineCount())
	for n := 1; n <= upTo; n++ {
		_, state = state.Step(doc.Line(n).Text)
	}
	return state
}

// run returns the fence character and run length at the start of s.
// Only backtick and tilde runs count.
func run(s string) (byte, int) {
	if len(s) == 0 || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	char := s[0]
	width := 1
	for width < len(s) && s[width] == char {
		width++
	}
	return char, width
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f' || c == '\r'
}

func leadingSpace(s string) int {
	n := 0
	for n < len(s) && isSpace(s[n]) {
		n++
	}
	return n
}

func trailingSpace(s string) int {
	n := 0
	for n < len(s) && isSpace(s[len(s)-1-n]) {
		n++
	}
	return n
}

func isBlank(s string) bool {
	return leadingSpace(s) == len(s)
}
