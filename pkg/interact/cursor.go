package interact

import (
	"github.com/yaklabco/mddecor/pkg/fence"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// CursorInCode reports whether offset falls inside a fenced code block,
// including the fence lines themselves. Fence state is replayed from the
// start of the document on every call.
func CursorInCode(doc mdast.Document, offset int) bool {
	line, ok := mdast.LineContaining(doc, offset)
	if !ok {
		return false
	}

	state := fence.Replay(doc, line.Number-1)
	role, _ := state.Step(line.Text)
	return role != fence.Outside
}
