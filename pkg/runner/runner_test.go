package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/fsutil"
	"github.com/yaklabco/mddecor/pkg/reporter"
	"github.com/yaklabco/mddecor/pkg/runner"
)

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := runner.New(runner.BuildFiles(decor.NewBuilder(decor.Options{}), decor.Full()))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.Failed())
}

func TestRunner_Run_Stats(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, map[string]string{
		"a.md": "# A\n- [ ] one\n- [x] two\n",
		"b.md": "plain text\n",
		"c.md": "- [X] done\n",
	})
	r := runner.New(runner.BuildFiles(decor.NewBuilder(decor.Options{}), decor.Full()))

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{".", "missing.md"},
		WorkingDir: dir,
		Jobs:       2,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 4)
	paths := make([]string, len(result.Files))
	for i, f := range result.Files {
		paths[i] = filepath.Base(f.Path)
	}
	assert.Equal(t, []string{"a.md", "b.md", "c.md", "missing.md"}, paths)

	assert.ErrorIs(t, result.Files[3].Err, fsutil.ErrNotFound)
	assert.Equal(t, runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  3,
		FilesErrored:    1,
		Decorations:     result.Files[0].Set.Len() + result.Files[1].Set.Len() + result.Files[2].Set.Len(),
		Checkboxes:      3,
		Checked:         2,
	}, result.Stats)
	assert.True(t, result.Failed())
	assert.Len(t, result.Report().Files, 4)
}

func TestRunner_Run_ViewportApplied(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, map[string]string{"a.md": "# One\n# Two\n# Three\n"})
	vp := decor.Viewport{FromLine: 2, ToLine: 2}
	r := runner.New(runner.BuildFiles(decor.NewBuilder(decor.Options{}), vp))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	file := result.Files[0]
	assert.Equal(t, vp, file.Viewport)
	for _, d := range file.Set.All() {
		assert.Equal(t, 2, d.Line, d.String())
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	docs := make(map[string]string)
	for i := range 12 {
		docs[fmt.Sprintf("doc%02d.md", i)] = fmt.Sprintf("# Doc %d\n**bold** and *italic*\n- [ ] task %d\n", i, i)
	}
	dir := writeDocs(t, docs)
	builder := decor.NewBuilder(decor.Options{})

	run := func(jobs int) *runner.Result {
		result, err := runner.New(runner.BuildFiles(builder, decor.Full())).Run(context.Background(),
			runner.Options{WorkingDir: dir, Jobs: jobs})
		require.NoError(t, err)
		return result
	}

	serial, parallel := run(1), run(8)
	require.Len(t, parallel.Files, len(serial.Files))
	assert.Equal(t, serial.Stats, parallel.Stats)
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.True(t, serial.Files[i].Set.Equal(parallel.Files[i].Set), serial.Files[i].Path)
	}
}

func TestRunner_Run_ConcurrentProcessing(t *testing.T) {
	t.Parallel()

	docs := make(map[string]string)
	for i := range 20 {
		docs[fmt.Sprintf("f%02d.md", i)] = "x\n"
	}
	dir := writeDocs(t, docs)

	var calls atomic.Int32
	r := runner.New(func(_ context.Context, path string) reporter.File {
		calls.Add(1)
		return reporter.File{Path: path}
	})

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 4})
	require.NoError(t, err)
	assert.Equal(t, int32(20), calls.Load())
	assert.Equal(t, 20, result.Stats.FilesProcessed)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, map[string]string{"a.md": "x\n", "b.md": "y\n", "c.md": "z\n"})

	ctx, cancel := context.WithCancel(context.Background())
	r := runner.New(func(_ context.Context, path string) reporter.File {
		cancel()
		return reporter.File{Path: path}
	})

	result, err := r.Run(ctx, runner.Options{WorkingDir: dir, Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Less(t, len(result.Files), 3)
}
