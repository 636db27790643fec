// Package fsutil reads and writes the markdown files mddecor edits.
// Writes are atomic, guarded against concurrent modification, and can leave a backup behind.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified is returned by Save when the file changed on disk after it was read.
	ErrModified = errors.New("file modified since it was read")
)

// File is a markdown file as read from disk, plus the state needed to detect
// a concurrent edit before writing it back.
type File struct {
	Path    string
	Content []byte

	mode    os.FileMode
	modTime time.Time
	size    int64
	hash    [sha256.Size]byte
}

// Mode returns the permission bits the file had when read.
func (f *File) Mode() os.FileMode {
	return f.mode
}

// Read loads path.
func Read(ctx context.Context, path string) (*File, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &File{
		Path:    path,
		Content: content,
		mode:    stat.Mode().Perm(),
		modTime: stat.ModTime(),
		size:    stat.Size(),
		hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// Changed reports whether the file on disk differs from what Read saw.
// Mod time and size are compared first; the content hash settles the rest.
func (f *File) Changed(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", f.Path, err)
	}

	if !stat.ModTime().Equal(f.modTime) || stat.Size() != f.size {
		return true, nil
	}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return sha256.Sum256(content) != f.hash, nil
}

// Save writes content over the file. It fails with ErrModified if the file
// changed since Read, and backs the old content up first when backups allow.
// The returned path names the backup written, if any.
func (f *File) Save(ctx context.Context, content []byte, backups Backups) (string, error) {
	changed, err := f.Changed(ctx)
	if err != nil {
		return "", err
	}
	if changed {
		return "", fmt.Errorf("%w: %s", ErrModified, f.Path)
	}

	backupPath, err := backups.Create(ctx, f)
	if err != nil {
		return "", err
	}

	if err := WriteAtomic(ctx, f.Path, content, f.mode); err != nil {
		return backupPath, err
	}

	f.Content = content
	f.hash = sha256.Sum256(content)
	f.size = int64(len(content))
	if stat, err := os.Stat(f.Path); err == nil {
		f.modTime = stat.ModTime()
	}

	return backupPath, nil
}
