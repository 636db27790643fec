package mdast

import "sort"

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
// Empty content yields a single empty line, matching what an editor shows.
func BuildLines(content []byte) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Last line (may be empty, may lack a trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount implements Document.
func (s *Snapshot) LineCount() int {
	return len(s.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (s *Snapshot) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(s.Content) || len(s.Lines) == 0 {
		return 0, 0
	}

	// Binary search to find the line containing the offset.
	lineIdx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(s.Lines) {
		lineIdx = len(s.Lines) - 1
	}

	lineInfo := s.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	// 1-based line and column.
	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
// The column may point just past the line's text (cursor at end of line).
func (s *Snapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(s.Lines) || col < 1 {
		return 0, false
	}

	lineInfo := s.Lines[line-1]
	offset := lineInfo.StartOffset + col - 1
	if offset > lineInfo.NewlineStart {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (s *Snapshot) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}

	lineInfo := s.Lines[line-1]
	return s.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// LineContaining finds the line of doc that contains offset, using only the
// Document contract. Offsets that sit on a line terminator resolve to the
// line the terminator ends. Returns false when offset is outside the document.
func LineContaining(doc Document, offset int) (Line, bool) {
	count := doc.LineCount()
	if count == 0 || offset < 0 {
		return Line{}, false
	}

	// First line whose start is beyond offset; the line before it contains offset.
	idx := sort.Search(count, func(i int) bool {
		return doc.Line(i+1).StartOffset > offset
	})
	if idx == 0 {
		return Line{}, false
	}

	line := doc.Line(idx)
	if idx == count && offset > line.EndOffset() {
		return Line{}, false
	}
	return line, true
}
