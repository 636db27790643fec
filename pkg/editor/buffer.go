// Package editor is a minimal in-memory editing surface that hosts the
// decoration engine. The CLI uses it to drive the engine against files,
// and tests use it to exercise the full edit, rebuild and render cycle.
package editor

import (
	"fmt"

	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/engine"
	"github.com/yaklabco/mddecor/pkg/fix"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// ChangeFunc is called after every successful edit.
type ChangeFunc func(b *Buffer)

// Buffer holds a document and the state a host keeps for rendering.
type Buffer struct {
	snapshot *mdast.Snapshot
	grid     Grid

	decorations  decor.Set
	cursorInCode bool
	onChange     []ChangeFunc
	revision     int
}

// Compile-time interface checks.
var (
	_ engine.Host           = (*Buffer)(nil)
	_ engine.DecorationSink = (*Buffer)(nil)
	_ engine.CursorStyler   = (*Buffer)(nil)
)

// NewBuffer creates a buffer over content. The buffer keeps its own copy.
func NewBuffer(path string, content []byte) *Buffer {
	return &Buffer{
		snapshot: mdast.NewSnapshot(path, append([]byte(nil), content...)),
		grid:     NewGrid(),
	}
}

// OnChange registers fn to run after each edit.
func (b *Buffer) OnChange(fn ChangeFunc) {
	b.onChange = append(b.onChange, fn)
}

// Snapshot returns the current immutable snapshot.
func (b *Buffer) Snapshot() *mdast.Snapshot {
	return b.snapshot
}

// Bytes returns the current content.
func (b *Buffer) Bytes() []byte {
	return b.snapshot.Content
}

// Revision counts successful edits.
func (b *Buffer) Revision() int {
	return b.revision
}

// Grid returns the screen mapping used for coordinate resolution.
func (b *Buffer) Grid() *Grid {
	return &b.grid
}

// LineCount implements mdast.Document.
func (b *Buffer) LineCount() int {
	return b.snapshot.LineCount()
}

// Line implements mdast.Document.
func (b *Buffer) Line(n int) mdast.Line {
	return b.snapshot.Line(n)
}

// TextBetween implements mdast.Document.
func (b *Buffer) TextBetween(from, to int) string {
	return b.snapshot.TextBetween(from, to)
}

// ReplaceRange implements engine.Host. Listeners run after the new text is
// in place.
func (b *Buffer) ReplaceRange(from, to int, text string) error {
	content, err := fix.Apply(b.snapshot.Content, fix.Replace(from, to, text))
	if err != nil {
		return fmt.Errorf("replace range: %w", err)
	}
	b.snapshot = mdast.NewSnapshot(b.snapshot.Path, content)
	b.revision++
	for _, fn := range b.onChange {
		fn(b)
	}
	return nil
}

// OffsetAtScreenPoint implements engine.Host using the buffer's grid.
func (b *Buffer) OffsetAtScreenPoint(x, y int) (int, bool) {
	return b.grid.OffsetAt(b.snapshot, x, y)
}

// ApplyDecorations implements engine.DecorationSink.
func (b *Buffer) ApplyDecorations(set decor.Set) {
	b.decorations = set
}

// Decorations returns the last set the engine pushed.
func (b *Buffer) Decorations() decor.Set {
	return b.decorations
}

// SetCursorInCode implements engine.CursorStyler.
func (b *Buffer) SetCursorInCode(inCode bool) {
	b.cursorInCode = inCode
}

// CursorInCode returns the last cursor styling flag.
func (b *Buffer) CursorInCode() bool {
	return b.cursorInCode
}
