package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mddecor/pkg/langdetect"
)

func TestFromInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		info  string
		want  string
		known bool
	}{
		{name: "canonical", info: "go", want: "go", known: true},
		{name: "alias", info: "golang", want: "go", known: true},
		{name: "python alias", info: "python3", want: "python", known: true},
		{name: "shell alias", info: "sh", want: "bash", known: true},
		{name: "case insensitive", info: "JSON", want: "json", known: true},
		{name: "extra words ignored", info: "python title=\"x.py\"", want: "python", known: true},
		{name: "pandoc attribute", info: "{.rust}", want: "rust", known: true},
		{name: "unknown kept", info: "MyLang", want: "mylang"},
		{name: "empty", info: "   "},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, known := langdetect.FromInfo(testCase.info)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.known, known)
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "shebang bash", content: "#!/bin/bash\necho hello", want: "bash"},
		{name: "shebang sh", content: "#!/bin/sh\necho hello", want: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", want: "python"},
		{name: "shebang beats content", content: "#!/bin/bash\ndef foo():\n    pass", want: "bash"},
		{name: "go", content: "package main\n\nfunc main() {}", want: "go"},
		{name: "python", content: "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", want: "python"},
		{name: "javascript", content: "const x = () => { return 42; };\nconsole.log(x());", want: "javascript"},
		{name: "json", content: `{"key": "value", "number": 123}`, want: "json"},
		{name: "yaml", content: "key: value\nother: 123\nlist:\n  - item1\n  - item2", want: "yaml"},
		{name: "rust", content: "fn main() {\n    println!(\"hi\");\n}", want: "rust"},
		{name: "sql", content: "SELECT * FROM users WHERE id = 1;", want: "sql"},
		{name: "html", content: "<!DOCTYPE html>\n<html>\n<body></body>\n</html>", want: "html"},
		{name: "dockerfile", content: "FROM golang:1.21\nWORKDIR /app\nRUN go build", want: "dockerfile"},
		{name: "empty", content: "", want: ""},
		{name: "whitespace", content: " \n\t", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, langdetect.Detect([]byte(testCase.content)))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	code := []byte("package main\n")

	assert.Equal(t, "python", langdetect.Resolve("python3", code, true), "info string wins")
	assert.Equal(t, "go", langdetect.Resolve("", code, true))
	assert.Empty(t, langdetect.Resolve("", code, false))
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cpp", langdetect.Slug("C++"))
	assert.Equal(t, "csharp", langdetect.Slug("C#"))
	assert.Equal(t, "vim-script", langdetect.Slug("Vim Script"))
	assert.Equal(t, "go", langdetect.Slug(" Go "))
}

func BenchmarkDetect(b *testing.B) {
	code := []byte("def hello():\n    print(\"Hello\")\n\nif __name__ == \"__main__\":\n    hello()")
	for range b.N {
		langdetect.Detect(code)
	}
}
