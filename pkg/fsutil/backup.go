package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BackupMode specifies where backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeXDG stores backups under $XDG_STATE_HOME/mddecor/backups.
	BackupModeXDG BackupMode = "xdg"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".mddecor.bak"

// Backups controls backup creation before a file is rewritten.
type Backups struct {
	Enabled bool
	Mode    BackupMode

	// StateDir overrides the XDG state directory; used by tests.
	StateDir string
}

// Path returns where the backup of file lives.
func (b Backups) Path(file string) string {
	if b.Mode != BackupModeXDG {
		return file + BackupSuffix
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	sum := sha256.Sum256([]byte(abs))
	name := hex.EncodeToString(sum[:8]) + "-" + filepath.Base(file) + ".bak"

	return filepath.Join(b.stateDir(), "mddecor", "backups", name)
}

func (b Backups) stateDir() string {
	if b.StateDir != "" {
		return b.StateDir
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "state")
}

// Create writes the content f was read with to the backup path.
// An existing backup is kept, so the backup always holds the oldest content.
// Returns the backup path, or "" when nothing was written.
func (b Backups) Create(ctx context.Context, f *File) (string, error) {
	if !b.Enabled {
		return "", nil
	}

	path := b.Path(f.Path)
	if _, err := os.Stat(path); err == nil {
		return "", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat backup path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	if err := WriteAtomic(ctx, path, f.Content, f.mode); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return path, nil
}

// Restore copies the backup of file back over it and removes the backup.
// Returns false if no backup exists.
func (b Backups) Restore(ctx context.Context, file string) (bool, error) {
	path := b.Path(file)

	backup, err := Read(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, file, backup.Content, backup.mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}

	return true, nil
}
