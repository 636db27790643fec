package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mddecor/pkg/block"
	"github.com/yaklabco/mddecor/pkg/fence"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

func TestClassify_OutsideFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		kind   block.Kind
		level  int
		marker mdast.SourceRange
	}{
		{name: "plain", line: "hello world", kind: block.None},
		{name: "empty", line: "", kind: block.None},
		{name: "h1", line: "# Title", kind: block.Heading, level: 1, marker: mdast.Span(0, 2)},
		{name: "h6", line: "###### Deep", kind: block.Heading, level: 6, marker: mdast.Span(0, 7)},
		{name: "seven hashes", line: "####### Nope", kind: block.None},
		{name: "hash without space", line: "#hashtag", kind: block.None},
		{name: "indented hash", line: "  # Title", kind: block.None},
		{name: "heading with empty text", line: "## ", kind: block.Heading, level: 2, marker: mdast.Span(0, 3)},
		{name: "bullet dash", line: "- item", kind: block.Bullet, marker: mdast.Span(0, 2)},
		{name: "bullet star", line: "* item", kind: block.Bullet, marker: mdast.Span(0, 2)},
		{name: "bullet plus indented", line: "    + item", kind: block.Bullet, marker: mdast.Span(4, 6)},
		{name: "dash without space", line: "-item", kind: block.None},
		{name: "ordered", line: "1. first", kind: block.Ordered, marker: mdast.Span(0, 3)},
		{name: "ordered multi digit", line: "  42. answer", kind: block.Ordered, marker: mdast.Span(2, 6)},
		{name: "number without period", line: "1 thing", kind: block.None},
		{name: "period without space", line: "3.14", kind: block.None},
		{name: "blockquote", line: "> quoted", kind: block.Blockquote, marker: mdast.Span(0, 2)},
		{name: "blockquote no space", line: ">quoted", kind: block.Blockquote, marker: mdast.Span(0, 1)},
		{name: "blockquote indented", line: " > quoted", kind: block.Blockquote, marker: mdast.Span(1, 3)},
		{name: "rule dashes", line: "---", kind: block.HorizontalRule},
		{name: "rule stars trailing space", line: "*****  ", kind: block.HorizontalRule},
		{name: "rule underscores", line: "___", kind: block.HorizontalRule},
		{name: "two dashes", line: "--", kind: block.None},
		{name: "mixed rule", line: "-*-", kind: block.None},
		{name: "rule with text", line: "--- x", kind: block.None},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			info, next := block.Classify(testCase.line, fence.State{})
			assert.Equal(t, testCase.kind, info.Kind)
			assert.Equal(t, testCase.level, info.Level)
			assert.Equal(t, testCase.marker, info.Marker)
			assert.False(t, next.InFence)
		})
	}
}

func TestClassify_Task(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		isTask  bool
		checked bool
		anchor  int
		bracket int
		marker  mdast.SourceRange
	}{
		{name: "unchecked", line: "- [ ] todo", isTask: true, anchor: 0, bracket: 2, marker: mdast.Span(0, 6)},
		{name: "checked lower", line: "- [x] done", isTask: true, checked: true, anchor: 0, bracket: 2, marker: mdast.Span(0, 6)},
		{name: "checked upper", line: "* [X] done", isTask: true, checked: true, anchor: 0, bracket: 2, marker: mdast.Span(0, 6)},
		{name: "indented", line: "  + [ ] nested", isTask: true, anchor: 2, bracket: 4, marker: mdast.Span(2, 8)},
		{name: "token at end of line", line: "- [ ]", isTask: true, anchor: 0, bracket: 2, marker: mdast.Span(0, 5)},
		{name: "wide gap", line: "-   [x] far", isTask: true, checked: true, anchor: 0, bracket: 4, marker: mdast.Span(0, 8)},
		{name: "other state char", line: "- [-] maybe"},
		{name: "text glued to token", line: "- [ ]todo"},
		{name: "no bullet", line: "[ ] todo"},
		{name: "ordered is not a task", line: "1. [ ] todo"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			info, _ := block.Classify(testCase.line, fence.State{})
			if !testCase.isTask {
				assert.NotEqual(t, block.Task, info.Kind)
				return
			}
			require.Equal(t, block.Task, info.Kind)
			assert.Equal(t, testCase.checked, info.Checked)
			assert.Equal(t, testCase.anchor, info.CheckboxAnchor)
			assert.Equal(t, testCase.bracket, info.CheckboxBracket)
			assert.Equal(t, testCase.marker, info.Marker)
		})
	}
}

func TestClassify_FenceTakesPrecedence(t *testing.T) {
	t.Parallel()

	lines := []string{"```go", "# not a heading", "- [ ] not a task", "```", "# heading"}
	want := []block.Kind{
		block.CodeFenceOpen,
		block.CodeContent,
		block.CodeContent,
		block.CodeFenceClose,
		block.Heading,
	}

	var state fence.State
	got := make([]block.Kind, 0, len(lines))
	for _, line := range lines {
		var info block.LineInfo
		info, state = block.Classify(line, state)
		got = append(got, info.Kind)
	}
	assert.Equal(t, want, got)
}

func TestClassify_FenceMarker(t *testing.T) {
	t.Parallel()

	info, next := block.Classify("~~~~ python ", fence.State{})
	require.Equal(t, block.CodeFenceOpen, info.Kind)
	assert.Equal(t, mdast.Span(0, 4), info.Fence.Run)
	assert.Equal(t, mdast.Span(5, 11), info.Fence.Info)
	assert.True(t, next.InFence)
	assert.Equal(t, byte('~'), next.Char)
	assert.Equal(t, 4, next.Length)
}

func TestClassify_TaskBeatsBullet(t *testing.T) {
	t.Parallel()

	info, _ := block.Classify("- [x] done", fence.State{})
	assert.Equal(t, block.Task, info.Kind)

	info, _ = block.Classify("- plain", fence.State{})
	assert.Equal(t, block.Bullet, info.Kind)
}

func TestKind_IsCode(t *testing.T) {
	t.Parallel()

	assert.True(t, block.CodeFenceOpen.IsCode())
	assert.True(t, block.CodeContent.IsCode())
	assert.True(t, block.CodeFenceClose.IsCode())
	assert.False(t, block.Heading.IsCode())
	assert.Equal(t, "horizontal-rule", block.HorizontalRule.String())
}
