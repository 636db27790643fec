package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover resolves opts.Paths to a sorted, deduplicated list of absolute
// file paths. A path that does not exist is kept, so the caller reports it
// alongside the files that could be read.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	walker := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		switch {
		case err != nil:
			walker.add(absPath)
		case info.IsDir():
			if err := walker.walk(absPath); err != nil {
				return nil, err
			}
		default:
			walker.add(absPath)
		}
	}

	slices.Sort(walker.files)
	return walker.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	excludes   []glob.Glob
	follow     bool

	seen    map[string]struct{}
	visited map[string]struct{}
	files   []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// excluded matches path against every exclude pattern, relative to the
// working directory, relative to the walk root, and by base name. A
// directory also matches as "rel/", so "vendor/**" prunes vendor itself.
func (w *walker) excluded(path, root string, dir bool) bool {
	candidates := []string{filepath.Base(path)}
	for _, from := range []string{w.workDir, root} {
		if rel, err := filepath.Rel(from, path); err == nil && rel != "." {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	if dir {
		for _, c := range candidates {
			candidates = append(candidates, c+"/")
		}
	}
	return slices.ContainsFunc(w.excludes, func(g glob.Glob) bool {
		return slices.ContainsFunc(candidates, g.Match)
	})
}

func (w *walker) markdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(w.extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

func (w *walker) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := w.visited[real]; ok {
			return nil
		}
		w.visited[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || (path != root && w.excluded(path, root, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || w.excluded(path, root, false) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if info.IsDir() {
				if !w.follow {
					return nil
				}
				target, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // unresolvable symlinks are skipped
				}
				return w.walk(target)
			}
		}

		if w.markdown(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}
