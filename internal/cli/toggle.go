package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/logging"
	"github.com/yaklabco/mddecor/internal/ui/pretty"
	"github.com/yaklabco/mddecor/pkg/config"
	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/editor"
	"github.com/yaklabco/mddecor/pkg/engine"
	"github.com/yaklabco/mddecor/pkg/fix"
	"github.com/yaklabco/mddecor/pkg/fsutil"
	"github.com/yaklabco/mddecor/pkg/interact"
)

// ErrNotHandled is returned when a toggle or click found nothing to act on.
var ErrNotHandled = errors.New("nothing to do")

type toggleFlags struct {
	line   int
	dryRun bool
	backup bool
	noBack bool
}

func newToggleCommand() *cobra.Command {
	flags := &toggleFlags{}

	cmd := &cobra.Command{
		Use:   "toggle <file> --line N",
		Short: "Toggle the task checkbox on a line",
		Long: `Toggle the task checkbox on line N, rewriting its [ ] token to [x] or
back. Nothing else in the file changes. The file is replaced atomically and
the write is refused if the file changed on disk in the meantime.`,
		Example: `  mddecor toggle TODO.md --line 3
  mddecor toggle TODO.md --line 3 --dry-run
  mddecor toggle TODO.md --line 3 --backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.line, "line", "l", 0, "1-based line holding the checkbox")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the diff instead of writing the file")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "back the file up before writing")
	cmd.Flags().BoolVar(&flags.noBack, "no-backups", false, "never write a backup, even if configured")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func runToggle(cmd *cobra.Command, path string, flags *toggleFlags) error {
	logger := logging.FromContext(cmd.Context())
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, &config.Config{
		DryRun:    flags.dryRun,
		NoBackups: flags.noBack,
		Backups:   config.BackupsConfig{Enabled: flags.backup},
	})
	if err != nil {
		return err
	}

	file, err := fsutil.Read(ctx, path)
	if err != nil {
		return err
	}

	opts, err := engineOptions(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}

	buf := editor.NewBuffer(path, file.Content)
	eng := engine.New(buf, opts)
	buf.OnChange(func(*editor.Buffer) { eng.DocumentChanged() })
	eng.DocumentChanged()

	box, err := interact.CheckboxOnLine(buf, flags.line)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrNotHandled, err)
	}

	widget, ok := checkboxWidget(eng.Decorations(), box)
	if !ok || !eng.PointerDown(widget) {
		return fmt.Errorf("%s:%d: %w: checkbox could not be toggled", path, flags.line, ErrNotHandled)
	}

	updated := buf.Bytes()
	token := box.ToggleEdit().NewText
	logger.Debug("toggled checkbox",
		logging.FieldPath, path,
		logging.FieldLine, flags.line,
		logging.FieldChecked, !box.Checked,
		logging.FieldDryRun, cfg.DryRun,
	)

	out := cmd.OutOrStdout()
	if cfg.DryRun {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd, cfg), out))
		diff := fix.GenerateDiff(path, file.Content, updated)
		_, err := fmt.Fprint(out, styles.FormatDiff(diff.String()))
		return err
	}

	backupPath, err := file.Save(ctx, updated, backupsFor(cfg))
	if err != nil {
		return err
	}
	if backupPath != "" {
		logger.Info("wrote backup", logging.FieldPath, path, logging.FieldBackup, backupPath)
	}

	_, err = fmt.Fprintf(out, "%s:%d %s\n", path, flags.line, token)
	return err
}

// checkboxWidget finds the widget decoration the engine rendered for box.
func checkboxWidget(set decor.Set, box decor.Checkbox) (decor.Decoration, bool) {
	for _, d := range set.OfKind(decor.WidgetKind) {
		if d.Checkbox != nil && d.Checkbox.EditPosition == box.EditPosition {
			return d, true
		}
	}
	return decor.Decoration{}, false
}

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>...",
		Short: "Restore files from their toggle backups",
		Long: `Copy the backup written by toggle back over each file and remove the
backup. The configured backups.mode decides where backups are looked up.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			backups := backupsFor(cfg)
			out := cmd.OutOrStdout()
			missing := 0
			for _, path := range args {
				restored, err := backups.Restore(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if !restored {
					logging.FromContext(cmd.Context()).Warn("no backup found", logging.FieldPath, path,
						logging.FieldBackup, backups.Path(path))
					missing++
					continue
				}
				fmt.Fprintf(out, "restored %s\n", path)
			}

			if missing > 0 {
				return fmt.Errorf("%w: %d file(s) had no backup", ErrNotHandled, missing)
			}
			return nil
		},
	}
}
