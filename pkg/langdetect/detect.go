// Package langdetect names the language of fenced code blocks.
//
// A fence's info string is resolved through go-enry's alias table, so
// "golang", "py" and "sh" come back as canonical names. Fences without an
// info string can be identified from their content.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates bounds the classifier to languages commonly found in notes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// signature is a cheap content check tried before the classifier.
type signature struct {
	lang  string
	match func(content, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only lookup table, ordered by specificity.
var signatures = []signature{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(content, _ []byte) bool {
		return (bytes.Contains(content, []byte("def ")) && bytes.Contains(content, []byte("):"))) ||
			bytes.Contains(content, []byte("__name__")) ||
			(bytes.Contains(content, []byte("from ")) && bytes.Contains(content, []byte(" import ")))
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{"dockerfile", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("\nRUN "))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(verb)) {
				return true
			}
		}
		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("fn main()")) || bytes.Contains(content, []byte("let mut "))
	}},
	{"javascript", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("console.log")) || bytes.Contains(content, []byte("=> {"))
	}},
	{"yaml", func(content, _ []byte) bool {
		return yamlKeys(content) >= 2
	}},
}

// FromInfo resolves the first word of a fence info string to a canonical
// language name. Unknown names are returned lowercased with ok false, so
// "```mylang" still yields "mylang".
func FromInfo(info string) (string, bool) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", false
	}
	word := strings.TrimPrefix(fields[0], "{.")
	word = strings.TrimRight(word, "}")
	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return canonical(lang), true
	}
	return strings.ToLower(word), false
}

// Detect guesses the language of code content. It returns "" when no
// guess is confident enough.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return canonical(lang)
	}
	for _, sig := range signatures {
		if sig.match(content, trimmed) {
			return sig.lang
		}
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return canonical(lang)
	}
	return ""
}

// Resolve returns the language for a fence: the info string wins, and
// content detection is used only for bare fences when detect is set.
func Resolve(info string, content []byte, detect bool) string {
	if lang, _ := FromInfo(info); lang != "" {
		return lang
	}
	if !detect {
		return ""
	}
	return Detect(content)
}

// Slug turns a language name into a token usable in a style class.
func Slug(lang string) string {
	return slugReplacer.Replace(strings.ToLower(strings.TrimSpace(lang)))
}

//nolint:gochecknoglobals // Immutable replacer.
var slugReplacer = strings.NewReplacer("++", "pp", "#", "sharp", " ", "-", ".", "-", "/", "-")

// canonical maps go-enry language names to the lowercase names used in
// fence info strings.
func canonical(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

// yamlKeys counts lines that look like YAML mappings or list items.
func yamlKeys(content []byte) int {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) ||
			(bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\"")) {
			count++
		}
	}
	return count
}
