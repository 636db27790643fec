// Package mdast provides the document model shared by the decoration engine.
// It defines:
// - Document: the read-only access contract a host editor provides
// - Snapshot: an immutable, lossless Document over a byte slice
// - LineInfo and SourceRange: byte-offset bookkeeping for lines and spans
package mdast

// Document is the read-only view of a host's text that the engine consumes.
// Line numbers are 1-based; offsets are byte offsets into the UTF-8 text.
type Document interface {
	// LineCount returns the number of lines. An empty document has one line.
	LineCount() int

	// Line returns the 1-based line n without its line terminator.
	// Out-of-range line numbers return the zero Line.
	Line(n int) Line

	// TextBetween returns the text in the half-open range [from, to).
	// The range is clamped to the document bounds.
	TextBetween(from, to int) string
}

// Line is a single document line as seen by the engine.
type Line struct {
	// Number is the 1-based line number. Zero means "no line".
	Number int

	// Text is the line content, excluding the newline characters.
	Text string

	// StartOffset is the document offset of the first byte of Text.
	StartOffset int
}

// EndOffset returns the document offset just past the line's text.
func (l Line) EndOffset() int {
	return l.StartOffset + len(l.Text)
}

// Contains reports whether offset falls on this line, including the
// position just past its last character.
func (l Line) Contains(offset int) bool {
	return l.Number > 0 && offset >= l.StartOffset && offset <= l.EndOffset()
}

// Snapshot is an immutable, lossless view of a document at a specific time.
type Snapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full document bytes.
	Content []byte

	// Lines contains metadata for each line in the document.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line in a document.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// Compile-time interface check.
var _ Document = (*Snapshot)(nil)

// NewSnapshot creates a Snapshot from content and builds its line index.
// The content slice is retained, not copied.
func NewSnapshot(path string, content []byte) *Snapshot {
	return &Snapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// FromString creates an in-memory Snapshot from text.
func FromString(text string) *Snapshot {
	return NewSnapshot("", []byte(text))
}

// Line implements Document.
func (s *Snapshot) Line(n int) Line {
	if n < 1 || n > len(s.Lines) {
		return Line{}
	}
	info := s.Lines[n-1]
	return Line{
		Number:      n,
		Text:        string(s.Content[info.StartOffset:info.NewlineStart]),
		StartOffset: info.StartOffset,
	}
}

// TextBetween implements Document.
func (s *Snapshot) TextBetween(from, to int) string {
	from = max(from, 0)
	to = min(to, len(s.Content))
	if from >= to {
		return ""
	}
	return string(s.Content[from:to])
}

// String returns the full document text.
func (s *Snapshot) String() string {
	return string(s.Content)
}
