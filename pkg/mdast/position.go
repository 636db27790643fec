package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Span is shorthand for building a SourceRange.
func Span(start, end int) SourceRange {
	return SourceRange{StartOffset: start, EndOffset: end}
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Overlaps returns true if the two half-open ranges share at least one byte.
func (r SourceRange) Overlaps(other SourceRange) bool {
	return r.StartOffset < other.EndOffset && other.StartOffset < r.EndOffset
}

// Shift returns the range moved by delta bytes.
// Used to turn line-relative ranges into document offsets.
func (r SourceRange) Shift(delta int) SourceRange {
	return SourceRange{StartOffset: r.StartOffset + delta, EndOffset: r.EndOffset + delta}
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}
