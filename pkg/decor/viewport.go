package decor

// Viewport limits a build to a range of 1-based lines, inclusive. The zero
// Viewport covers the whole document. Fence state is always computed from
// the first line, so a viewport never changes how a line is classified.
type Viewport struct {
	FromLine int
	ToLine   int
}

// Full is the viewport covering every line.
func Full() Viewport {
	return Viewport{}
}

// Lines clamps the viewport to a document of lineCount lines and returns
// the first and last visible line. An empty window returns first > last.
func (v Viewport) Lines(lineCount int) (int, int) {
	first := max(v.FromLine, 1)
	last := lineCount
	if v.ToLine > 0 {
		last = min(v.ToLine, lineCount)
	}
	return first, last
}

// Contains reports whether line n is visible in a document of lineCount
// lines.
func (v Viewport) Contains(n, lineCount int) bool {
	first, last := v.Lines(lineCount)
	return n >= first && n <= last
}
