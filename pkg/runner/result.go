package runner

import "github.com/yaklabco/mddecor/pkg/reporter"

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// Decorations counts decorations across all processed files.
	Decorations int

	// Checkboxes and Checked count task checkboxes and the ticked ones.
	Checkboxes int
	Checked    int
}

// Result is the outcome of a run, with files in discovery order.
type Result struct {
	Files []reporter.File
	Stats Stats
}

// Report returns the files in the shape reporters consume.
func (r *Result) Report() *reporter.Result {
	if r == nil {
		return &reporter.Result{}
	}
	return &reporter.Result{Files: r.Files}
}

// Failed reports whether any file could not be processed.
func (r *Result) Failed() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(file reporter.File) {
	r.Files = append(r.Files, file)

	if file.Err != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Decorations += file.Set.Len()
	for _, box := range file.Set.Checkboxes() {
		r.Stats.Checkboxes++
		if box.Checked {
			r.Stats.Checked++
		}
	}
}
