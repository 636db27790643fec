// Package runner decorates many Markdown files concurrently.
package runner

// Options controls file discovery and the worker pool.
type Options struct {
	// Paths are files or directories. Directories are walked for files with
	// one of Extensions; files named explicitly are always processed.
	// Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and is the base for ExcludeGlobs.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) treated as
	// Markdown during directory walks. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories. Patterns are matched
	// against slash-separated paths relative to WorkingDir and support **.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs caps the number of concurrent workers. 0 or negative means
	// runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
