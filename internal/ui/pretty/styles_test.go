package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mddecor/internal/ui/pretty"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	colored := pretty.NewStyles(true)
	require.NotNil(t, colored)
	assert.True(t, colored.ColorEnabled())

	plain := pretty.NewStyles(false)
	require.NotNil(t, plain)
	assert.False(t, plain.ColorEnabled())
	assert.Equal(t, "test", plain.Bold.Render("test"), "no-color Bold should not add formatting")
	assert.Equal(t, "test", plain.Failure.Render("test"))
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "NO_COLOR wins even on a TTY")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diff := "--- a/x.md\n+++ b/x.md\n@@ -1 +1 @@\n-- [ ] a\n+- [x] a\n"

	assert.Equal(t, diff, styles.FormatDiff(diff))
	assert.Empty(t, styles.FormatDiff(""))
}
