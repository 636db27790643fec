package fix

import "bytes"

// ApplyEdits applies edits already prepared with PrepareEdits.
// The input content is never modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, edit := range edits {
		delta += edit.Delta()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, edit := range edits {
		out.Write(content[cursor:edit.StartOffset])
		out.WriteString(edit.NewText)
		cursor = edit.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Apply validates, orders and applies edits to content.
func Apply(content []byte, edits ...TextEdit) ([]byte, error) {
	prepared, err := PrepareEdits(edits, content)
	if err != nil {
		return nil, err
	}
	return ApplyEdits(content, prepared), nil
}
