// Package highlight turns fenced code into token ranges using chroma.
package highlight

import (
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Token is a highlighted span of source. Offsets are absolute byte offsets
// and a token never crosses a line break.
type Token struct {
	From  int
	To    int
	Class string
}

// Highlighter tokenises code for a single language.
type Highlighter struct {
	lexer chroma.Lexer
}

// ForLanguage returns a highlighter for lang, or nil if chroma has no
// lexer for it. Plain-text lexers are treated as unknown.
func ForLanguage(lang string) *Highlighter {
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil || lexer == lexers.Fallback {
		return nil
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer)}
}

// Name returns the lexer's language name.
func (h *Highlighter) Name() string {
	if h == nil {
		return ""
	}
	return h.lexer.Config().Name
}

// Tokens tokenises code, which starts at document offset base, and returns
// one Token per styled run. Whitespace and plain text runs are omitted.
// A nil highlighter or a lexer error yields no tokens.
func (h *Highlighter) Tokens(code string, base int) []Token {
	if h == nil || code == "" {
		return nil
	}

	// EnsureLF is off so token offsets line up with CRLF sources.
	iterator, err := h.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, code)
	if err != nil {
		return nil
	}

	var out []Token
	pos := 0
	for token := iterator(); token != chroma.EOF; token = iterator() {
		start := pos
		pos += len(token.Value)
		if start >= len(code) {
			break
		}
		end := min(pos, len(code))

		class := Class(token.Type)
		if class == "" {
			continue
		}
		out = appendSplit(out, code, start, end, base, class)
	}
	return out
}

// Class returns the short CSS-style class chroma uses for a token type,
// or "" for types that carry no styling.
func Class(tokenType chroma.TokenType) string {
	if tokenType == chroma.Text || tokenType == chroma.TextWhitespace || tokenType == chroma.Whitespace {
		return ""
	}
	return chroma.StandardTypes[tokenType]
}

// appendSplit appends [start, end) of code as tokens, breaking at newlines
// and trimming the line break bytes themselves.
func appendSplit(out []Token, code string, start, end, base int, class string) []Token {
	for start < end {
		lineEnd := end
		if nl := strings.IndexByte(code[start:end], '\n'); nl >= 0 {
			lineEnd = start + nl
		}
		trimmed := lineEnd
		if trimmed > start && code[trimmed-1] == '\r' {
			trimmed--
		}
		if trimmed > start && strings.TrimSpace(code[start:trimmed]) != "" {
			out = append(out, Token{From: base + start, To: base + trimmed, Class: class})
		}
		start = lineEnd + 1
	}
	return out
}

// Colour returns the hex foreground colour style assigns to class, for
// renderers that draw tokens in a terminal.
func Colour(styleName, class string) (string, bool) {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	for tokenType, name := range chroma.StandardTypes {
		if name != class {
			continue
		}
		entry := style.Get(tokenType)
		if !entry.Colour.IsSet() {
			return "", false
		}
		return entry.Colour.String(), true
	}
	return "", false
}

// HasStyle reports whether chroma knows a style called name.
func HasStyle(name string) bool {
	return slices.Contains(styles.Names(), name)
}
