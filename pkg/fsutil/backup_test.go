package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mddecor/pkg/fsutil"
)

func TestBackupsPath(t *testing.T) {
	t.Parallel()

	sidecar := fsutil.Backups{Mode: fsutil.BackupModeSidecar}
	if got := sidecar.Path("/docs/todo.md"); got != "/docs/todo.md.mddecor.bak" {
		t.Errorf("sidecar Path() = %q", got)
	}

	xdg := fsutil.Backups{Mode: fsutil.BackupModeXDG, StateDir: "/state"}
	got := xdg.Path("/docs/todo.md")
	if !strings.HasPrefix(got, filepath.Join("/state", "mddecor", "backups")) || !strings.HasSuffix(got, "-todo.md.bak") {
		t.Errorf("xdg Path() = %q", got)
	}
	if other := xdg.Path("/elsewhere/todo.md"); other == got {
		t.Error("files with the same name in different directories share a backup path")
	}
}

func TestBackupsCreateRestore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode fsutil.BackupMode
	}{
		{"sidecar", fsutil.BackupModeSidecar},
		{"xdg", fsutil.BackupModeXDG},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			path := writeFixture(t, "- [ ] a\n", 0o644)
			backups := fsutil.Backups{Enabled: true, Mode: testCase.mode, StateDir: t.TempDir()}

			f, err := fsutil.Read(ctx, path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			backupPath, err := f.Save(ctx, []byte("- [x] a\n"), backups)
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if backupPath != backups.Path(path) {
				t.Errorf("backup path = %q, want %q", backupPath, backups.Path(path))
			}

			// The first backup is kept across later saves.
			again, err := f.Save(ctx, []byte("- [ ] a\n- [ ] b\n"), backups)
			if err != nil {
				t.Fatalf("second Save() error = %v", err)
			}
			if again != "" {
				t.Errorf("second save wrote backup %q", again)
			}

			restored, err := backups.Restore(ctx, path)
			if err != nil || !restored {
				t.Fatalf("Restore() = %v, %v", restored, err)
			}
			got, _ := os.ReadFile(path)
			if string(got) != "- [ ] a\n" {
				t.Errorf("restored content = %q", got)
			}
			if _, err := os.Stat(backupPath); !os.IsNotExist(err) {
				t.Errorf("backup still present after restore: %v", err)
			}
		})
	}
}

func TestBackupsRestoreMissing(t *testing.T) {
	t.Parallel()

	backups := fsutil.Backups{Mode: fsutil.BackupModeSidecar}
	restored, err := backups.Restore(context.Background(), filepath.Join(t.TempDir(), "doc.md"))
	if err != nil || restored {
		t.Errorf("Restore() = %v, %v; want false, nil", restored, err)
	}
}
