// Package interact implements the engine's responses to user input:
// toggling task checkboxes, tracking whether the cursor sits in code, and
// opening links on modifier-click.
package interact

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mddecor/pkg/block"
	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/fence"
	"github.com/yaklabco/mddecor/pkg/fix"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// ErrNotCheckbox is returned when a line holds no task checkbox.
var ErrNotCheckbox = errors.New("line has no task checkbox")

// CheckboxOnLine classifies line n of doc, replaying fence state from the
// first line, and returns its checkbox. Task syntax inside a code fence is
// not a checkbox.
func CheckboxOnLine(doc mdast.Document, n int) (decor.Checkbox, error) {
	if n < 1 || n > doc.LineCount() {
		return decor.Checkbox{}, fmt.Errorf("line %d: %w", n, ErrNotCheckbox)
	}

	line := doc.Line(n)
	info, _ := block.Classify(line.Text, fence.Replay(doc, n-1))
	if info.Kind != block.Task {
		return decor.Checkbox{}, fmt.Errorf("line %d: %w", n, ErrNotCheckbox)
	}

	bracket := info.CheckboxBracket
	return decor.Checkbox{
		Anchor:       line.StartOffset + info.CheckboxAnchor,
		EditPosition: line.StartOffset + bracket,
		Checked:      info.Checked,
		Token:        line.Text[bracket : bracket+len("[ ]")],
	}, nil
}

// ToggleLine returns the edit that toggles the checkbox on line n.
func ToggleLine(doc mdast.Document, n int) (fix.TextEdit, error) {
	box, err := CheckboxOnLine(doc, n)
	if err != nil {
		return fix.TextEdit{}, err
	}
	return box.ToggleEdit(), nil
}

// CheckboxAt returns the checkbox widget of set anchored at offset or whose
// token covers it.
func CheckboxAt(set decor.Set, offset int) (decor.Checkbox, bool) {
	for _, box := range set.Checkboxes() {
		if box.Anchor == offset || (offset >= box.EditPosition && offset < box.EditPosition+len("[ ]")) {
			return box, true
		}
	}
	return decor.Checkbox{}, false
}
