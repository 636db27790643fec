package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/fsutil"
	"github.com/yaklabco/mddecor/pkg/mdast"
	"github.com/yaklabco/mddecor/pkg/reporter"
)

// ProcessFunc decorates the file at path. Implementations must be safe for
// concurrent use.
type ProcessFunc func(ctx context.Context, path string) reporter.File

// Runner decorates discovered files with a pool of workers.
type Runner struct {
	Process ProcessFunc
}

// New creates a Runner that processes files with fn.
func New(fn ProcessFunc) *Runner {
	return &Runner{Process: fn}
}

// BuildFiles returns a ProcessFunc that reads each file and runs builder over
// the lines inside vp. Builders keep no state between builds, so one builder
// serves every worker.
func BuildFiles(builder *decor.Builder, vp decor.Viewport) ProcessFunc {
	return func(ctx context.Context, path string) reporter.File {
		file, err := fsutil.Read(ctx, path)
		if err != nil {
			return reporter.File{Path: path, Err: err}
		}
		doc := mdast.NewSnapshot(path, file.Content)
		return reporter.File{
			Path:     path,
			Doc:      doc,
			Set:      builder.Build(doc, vp),
			Viewport: vp,
		}
	}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Results come back in discovery order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]reporter.File, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan int)
	outcomes := make([]reporter.File, len(files))
	done := make([]bool, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				if ctx.Err() != nil {
					continue
				}
				outcomes[i] = r.Process(ctx, files[i])
				done[i] = true
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- i:
		}
	}
	close(workCh)
	wg.Wait()

	for i, ok := range done {
		if ok {
			result.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
