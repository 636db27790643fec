package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mddecor/pkg/runner"
)

// tree writes each file under a fresh temp dir and returns the dir.
func tree(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f+"\n"), 0o644))
	}
	return dir
}

func abs(dir string, files ...string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Join(dir, f)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := []string{
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/.draft.md",
		".hidden/secret.md",
		"vendor/lib/readme.md",
		"src/main.go",
		"notes.txt",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "directory walk keeps markdown only",
			opts: runner.Options{Paths: []string{"."}},
			want: []string{"docs/api.markdown", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name: "empty paths default to working dir",
			opts: runner.Options{},
			want: []string{"docs/api.markdown", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name: "explicit file is kept whatever its extension",
			opts: runner.Options{Paths: []string{"notes.txt"}},
			want: []string{"notes.txt"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Paths: []string{"."}, Extensions: []string{".markdown"}},
			want: []string{"docs/api.markdown"},
		},
		{
			name: "exclude directory glob",
			opts: runner.Options{Paths: []string{"."}, ExcludeGlobs: []string{"vendor/**"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{Paths: []string{"."}, ExcludeGlobs: []string{"readme.md"}},
			want: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "exclude with leading double star",
			opts: runner.Options{Paths: []string{"."}, ExcludeGlobs: []string{"**/*.markdown"}},
			want: []string{"docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name: "overlapping paths are deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.md", "."}},
			want: []string{"docs/api.markdown", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name: "missing path is kept for the caller to report",
			opts: runner.Options{Paths: []string{"gone.md", "readme.md"}},
			want: []string{"gone.md", "readme.md"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := tree(t, files...)
			opts := testCase.opts
			opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, abs(dir, testCase.want...), got)
		})
	}
}

func TestDiscover_ExcludeRelativeToWalkRoot(t *testing.T) {
	t.Parallel()

	files := []string{"docs/guide.md", "docs/vendor/x.md", "docs/vendor/deep/y.md"}

	tests := []struct {
		name    string
		pattern string
	}{
		{name: "relative to walked directory", pattern: "vendor/**"},
		{name: "relative to working directory", pattern: "docs/vendor/**"},
		{name: "directory with trailing slash", pattern: "vendor/"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := tree(t, files...)
			got, err := runner.Discover(context.Background(), runner.Options{
				Paths:        []string{"docs"},
				WorkingDir:   dir,
				ExcludeGlobs: []string{testCase.pattern},
			})
			require.NoError(t, err)
			assert.Equal(t, abs(dir, "docs/guide.md"), got)
		})
	}
}

func TestDiscover_ExcludeFromOutsideWorkingDir(t *testing.T) {
	t.Parallel()

	dir := tree(t, "notes.md", "vendor/skip.md")
	got, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{dir},
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"vendor/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "notes.md"), got)
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	dir := tree(t, "a.md")
	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := tree(t, "a.md", "b/c.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := tree(t, "real/doc.md")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))
	// A loop back to the root must not recurse forever.
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "real", "loop")))

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "real/doc.md"), got)

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Contains(t, got, filepath.Join(dir, "real", "doc.md"))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".markdown")
}
