package mdast

import "unicode/utf8"

// UTF16Offset converts a byte offset into the number of UTF-16 code units
// that precede it. Hosts built on UTF-16 strings address text this way.
// Offsets inside a multi-byte sequence resolve to the start of that rune.
func (s *Snapshot) UTF16Offset(byteOffset int) int {
	byteOffset = min(max(byteOffset, 0), len(s.Content))

	units := 0
	for pos := 0; pos < byteOffset; {
		r, size := utf8.DecodeRune(s.Content[pos:])
		if pos+size > byteOffset {
			break
		}
		units += utf16Len(r)
		pos += size
	}
	return units
}

// ByteOffset converts a UTF-16 code unit offset back to a byte offset.
// An offset that splits a surrogate pair resolves to the start of the rune.
func (s *Snapshot) ByteOffset(utf16Offset int) int {
	units := 0
	pos := 0
	for pos < len(s.Content) {
		r, size := utf8.DecodeRune(s.Content[pos:])
		next := units + utf16Len(r)
		if next > utf16Offset {
			return pos
		}
		units = next
		pos += size
	}
	return pos
}

// utf16Len returns how many UTF-16 code units encode r.
// Runes outside the BMP take a surrogate pair.
func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}
