package inline

import "strings"

// MatchCode finds `code` spans. Runs of two or more backticks are skipped
// and a span closes at the next lone backtick. Unterminated spans are not
// matches.
func MatchCode(line string) []Match {
	var out []Match
	pos := 0
	for pos < len(line) {
		if line[pos] != '`' {
			pos++
			continue
		}
		if width := runLen(line, pos); width > 1 {
			pos += width
			continue
		}
		rel := strings.IndexByte(line[pos+1:], '`')
		if rel < 0 {
			break
		}
		closeAt := pos + 1 + rel
		if runLen(line, closeAt) > 1 {
			pos = closeAt
			continue
		}
		out = append(out, wrapped(Code, pos, closeAt+1, 1))
		pos = closeAt + 1
	}
	return out
}

// MatchBold finds **bold** spans. Neither delimiter may be followed by a
// third '*' and the content may not contain '*', so ***text*** is not bold.
func MatchBold(line string) []Match {
	var out []Match
	pos := 0
	for pos+1 < len(line) {
		if !isDouble(line, pos, '*') || at(line, pos+2) == '*' {
			pos++
			continue
		}
		end := pos + 2
		for end < len(line) && line[end] != '*' {
			end++
		}
		if end == pos+2 || !isDouble(line, end, '*') || at(line, end+2) == '*' {
			pos++
			continue
		}
		out = append(out, wrapped(Bold, pos, end+2, 2))
		pos = end + 2
	}
	return out
}

// MatchItalic finds *italic* spans delimited by a '*' with no '*' on either
// side. It knows nothing about bold; Compose drops italic spans that
// overlap bold ones.
func MatchItalic(line string) []Match {
	var out []Match
	pos := 0
	for pos < len(line) {
		if !isLoneStar(line, pos) {
			pos++
			continue
		}
		rel := strings.IndexByte(line[pos+1:], '*')
		if rel < 0 {
			break
		}
		closeAt := pos + 1 + rel
		if !isLoneStar(line, closeAt) {
			pos = closeAt
			continue
		}
		out = append(out, wrapped(Italic, pos, closeAt+1, 1))
		pos = closeAt + 1
	}
	return out
}

// MatchStrike finds ~~strike~~ spans whose content has no '~'.
func MatchStrike(line string) []Match {
	return matchDouble(line, Strike, '~')
}

// MatchHighlight finds ==highlight== spans whose content has no '='.
func MatchHighlight(line string) []Match {
	return matchDouble(line, Highlight, '=')
}

// matchDouble finds spans opened and closed by two delim characters with at
// least one non-delim byte between them.
func matchDouble(line string, kind Kind, delim byte) []Match {
	var out []Match
	pos := 0
	for pos+1 < len(line) {
		if !isDouble(line, pos, delim) {
			pos++
			continue
		}
		end := pos + 2
		for end < len(line) && line[end] != delim {
			end++
		}
		if end == pos+2 {
			pos++
			continue
		}
		if !isDouble(line, end, delim) {
			pos = end
			continue
		}
		out = append(out, wrapped(kind, pos, end+2, 2))
		pos = end + 2
	}
	return out
}

// MatchImage finds ![alt](url) images. The alt text may be empty; the URL
// may not. The URL is captured as written, without validation.
func MatchImage(line string) []Match {
	var out []Match
	for pos := 0; pos+1 < len(line); pos++ {
		if line[pos] != '!' || line[pos+1] != '[' {
			continue
		}
		if match, ok := bracketed(line, pos+1, Image, true); ok {
			match.From = pos
			match.Parts.Bang = pos
			out = append(out, match)
			pos = match.To - 1
		}
	}
	return out
}

// MatchLink finds [text](url) links with non-empty text and URL. It reports
// the inner part of images too; Compose filters those out.
func MatchLink(line string) []Match {
	var out []Match
	for pos := 0; pos < len(line); pos++ {
		if line[pos] != '[' {
			continue
		}
		if match, ok := bracketed(line, pos, Link, false); ok {
			out = append(out, match)
			pos = match.To - 1
		}
	}
	return out
}

// bracketed parses [text](url) starting at the '[' at open.
func bracketed(line string, open int, kind Kind, allowEmptyText bool) (Match, bool) {
	closeBracket := open + 1
	for closeBracket < len(line) && line[closeBracket] != ']' && line[closeBracket] != '[' {
		closeBracket++
	}
	if closeBracket >= len(line) || line[closeBracket] != ']' {
		return Match{}, false
	}
	if closeBracket == open+1 && !allowEmptyText {
		return Match{}, false
	}

	openParen := closeBracket + 1
	if at(line, openParen) != '(' {
		return Match{}, false
	}
	rel := strings.IndexByte(line[openParen+1:], ')')
	if rel <= 0 {
		return Match{}, false
	}
	closeParen := openParen + 1 + rel

	return Match{
		Kind:         kind,
		From:         open,
		To:           closeParen + 1,
		ContentStart: open + 1,
		ContentEnd:   closeBracket,
		Parts: &LinkParts{
			Bang:         -1,
			OpenBracket:  open,
			CloseBracket: closeBracket,
			OpenParen:    openParen,
			CloseParen:   closeParen,
			URLStart:     openParen + 1,
			URLEnd:       closeParen,
		},
	}, true
}

// at returns line[i], or 0 when i is out of range.
func at(line string, i int) byte {
	if i < 0 || i >= len(line) {
		return 0
	}
	return line[i]
}

func isDouble(line string, i int, c byte) bool {
	return at(line, i) == c && at(line, i+1) == c
}

func isLoneStar(line string, i int) bool {
	return at(line, i) == '*' && at(line, i-1) != '*' && at(line, i+1) != '*'
}

// runLen counts identical bytes starting at i.
func runLen(line string, i int) int {
	n := 1
	for i+n < len(line) && line[i+n] == line[i] {
		n++
	}
	return n
}
