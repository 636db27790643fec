// Package fix applies byte-range text edits to document content.
package fix

import "fmt"

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string

	// Expect, when non-empty, is the text the range must hold for the edit
	// to apply. An edit computed from an older snapshot is rejected instead
	// of corrupting text that has since moved.
	Expect string
}

// Replace builds an unguarded edit.
func Replace(start, end int, newText string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: newText}
}

// Len returns the number of bytes the edit removes.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// Delta returns the change in content length the edit causes.
func (e TextEdit) Delta() int {
	return len(e.NewText) - e.Len()
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d] %q", e.StartOffset, e.EndOffset, e.NewText)
}
