package decor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/fix"
)

func TestSet_Overlapping(t *testing.T) {
	t.Parallel()

	set := build("- [ ] **a**", decor.Options{})

	var classes []string
	for _, d := range set.Overlapping(7, 8) {
		classes = append(classes, d.Class)
	}
	assert.Equal(t, []string{"md-bold-marker", "md-bold"}, classes)

	var atStart []string
	for _, d := range set.Overlapping(0, 0) {
		atStart = append(atStart, d.Class)
	}
	assert.Equal(t, []string{"md-task", "md-checkbox"}, atStart)
}

func TestSet_OfKind(t *testing.T) {
	t.Parallel()

	set := build("- [ ] a\n- [x] b", decor.Options{})
	assert.Len(t, set.OfKind(decor.WidgetKind), 2)
	assert.Len(t, set.Checkboxes(), 2)
	assert.Equal(t, set.Len(), len(set.All()))
	assert.Equal(t, decor.LineKind, set.At(0).Kind)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		items  []decor.Decoration
		reason string
	}{
		{
			name: "ordered",
			items: []decor.Decoration{
				{Kind: decor.LineKind, From: 0, To: 0},
				{Kind: decor.RangeKind, From: 0, To: 2},
				{Kind: decor.RangeKind, From: 0, To: 5},
				{Kind: decor.RangeKind, From: 3, To: 4},
			},
		},
		{
			name: "out of order",
			items: []decor.Decoration{
				{Kind: decor.RangeKind, From: 3, To: 4},
				{Kind: decor.RangeKind, From: 0, To: 2},
			},
			reason: "is out of order",
		},
		{
			name: "same start shorter after longer",
			items: []decor.Decoration{
				{Kind: decor.RangeKind, From: 0, To: 5},
				{Kind: decor.RangeKind, From: 0, To: 2},
			},
			reason: "is out of order",
		},
		{
			name:   "inverted",
			items:  []decor.Decoration{{Kind: decor.RangeKind, From: 4, To: 2}},
			reason: "is inverted",
		},
		{
			name:   "empty range",
			items:  []decor.Decoration{{Kind: decor.RangeKind, From: 2, To: 2}},
			reason: "is an empty range",
		},
		{
			name:   "wide widget",
			items:  []decor.Decoration{{Kind: decor.WidgetKind, From: 2, To: 3}},
			reason: "is not zero-width",
		},
		{
			name:   "negative",
			items:  []decor.Decoration{{Kind: decor.LineKind, From: -1, To: -1}},
			reason: "starts before the document",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := decor.Validate(testCase.items)
			if testCase.reason == "" {
				require.NoError(t, err)
				return
			}
			var orderErr *decor.OrderError
			require.ErrorAs(t, err, &orderErr)
			assert.Equal(t, testCase.reason, orderErr.Reason)
		})
	}
}

func TestCheckbox_ToggleEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
		back string
	}{
		{name: "check", text: "- [ ] task", want: "- [x] task", back: "- [ ] task"},
		{name: "uncheck", text: "- [x] task", want: "- [ ] task", back: "- [x] task"},
		{name: "uncheck upper", text: "  * [X] task [ ]", want: "  * [ ] task [ ]", back: "  * [x] task [ ]"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			boxes := build(testCase.text, decor.Options{}).Checkboxes()
			require.Len(t, boxes, 1)

			edit := boxes[0].ToggleEdit()
			assert.Equal(t, 3, edit.Len())

			got, err := fix.Apply([]byte(testCase.text), edit)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, string(got))

			back, err := fix.Apply(got, build(string(got), decor.Options{}).Checkboxes()[0].ToggleEdit())
			require.NoError(t, err)
			assert.Equal(t, testCase.back, string(back))
		})
	}
}

func TestCheckbox_ToggleEditStale(t *testing.T) {
	t.Parallel()

	box := build("- [ ] task", decor.Options{}).Checkboxes()[0]
	_, err := fix.Apply([]byte("x- [ ] task"), box.ToggleEdit())
	require.ErrorIs(t, err, fix.ErrStale)
}

func TestViewport_Lines(t *testing.T) {
	t.Parallel()

	first, last := decor.Full().Lines(10)
	assert.Equal(t, 1, first)
	assert.Equal(t, 10, last)

	first, last = decor.Viewport{FromLine: 3, ToLine: 50}.Lines(10)
	assert.Equal(t, 3, first)
	assert.Equal(t, 10, last)

	assert.True(t, decor.Viewport{FromLine: 2, ToLine: 4}.Contains(4, 10))
	assert.False(t, decor.Viewport{FromLine: 2, ToLine: 4}.Contains(5, 10))
}

func TestClasses(t *testing.T) {
	t.Parallel()

	classes := decor.DefaultClasses()
	assert.Equal(t, "md-bold", classes.Name(decor.RoleBold))
	assert.Equal(t, "h3", decor.RoleHeading(3))
	assert.Contains(t, decor.Roles(), decor.RoleCheckbox)

	classes.Overrides = map[string]string{decor.RoleBold: ""}
	assert.Equal(t, "md-bold", classes.Name(decor.RoleBold), "empty override is ignored")
}

func TestClassesRole(t *testing.T) {
	t.Parallel()

	classes := decor.Classes{Prefix: "md-", Overrides: map[string]string{decor.RoleCheckbox: "todo-box"}}

	tests := []struct {
		class string
		role  string
		ok    bool
	}{
		{"md-bold", decor.RoleBold, true},
		{"todo-box", decor.RoleCheckbox, true},
		{"md-tok-kw", "tok-kw", true},
		{"other", "", false},
		{"md-", "", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.class, func(t *testing.T) {
			t.Parallel()
			role, ok := classes.Role(testCase.class)
			assert.Equal(t, testCase.ok, ok)
			assert.Equal(t, testCase.role, role)
		})
	}
}
