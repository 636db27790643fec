package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrStale is wrapped by validation errors for edits whose Expect text no
// longer matches the content.
var ErrStale = errors.New("edit target changed")

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits checks every edit against content and returns the first
// problem found.
func ValidateEdits(edits []TextEdit, content []byte) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > len(content):
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, len(content)),
			}
		}
		if edit.Expect != "" {
			if found := string(content[edit.StartOffset:edit.EndOffset]); found != edit.Expect {
				return &ValidationError{
					Edit:    edit,
					Message: fmt.Sprintf("expected %q, found %q", edit.Expect, found),
					Err:     ErrStale,
				}
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// DetectConflicts reports the first pair of overlapping edits in a sorted
// slice.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{Edit1: edits[i-1], Edit2: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates edits against content and returns a sorted copy.
func PrepareEdits(edits []TextEdit, content []byte) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := ValidateEdits(edits, content); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}
