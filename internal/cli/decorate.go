package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/logging"
	"github.com/yaklabco/mddecor/pkg/config"
	"github.com/yaklabco/mddecor/pkg/editor"
	"github.com/yaklabco/mddecor/pkg/engine"
	"github.com/yaklabco/mddecor/pkg/fsutil"
	"github.com/yaklabco/mddecor/pkg/reporter"
	"github.com/yaklabco/mddecor/pkg/runner"
)

// ErrFilesFailed is returned when one or more inputs could not be read. The
// remaining files are still reported.
var ErrFilesFailed = errors.New("some files could not be decorated")

type decorateFlags struct {
	format      string
	viewport    string
	highlight   bool
	lineNumbers bool
	compact     bool
	ignore      []string
	jobs        int
}

func newDecorateCommand() *cobra.Command {
	flags := &decorateFlags{}

	cmd := &cobra.Command{
		Use:   "decorate <path>...",
		Short: "List the decorations of Markdown files",
		Long: `Scan Markdown files and print the decorations an editor would apply.
Directories are walked for .md and .markdown files; hidden entries and
paths matching --ignore are skipped.

The text format prints one decoration per line as path:location, kind,
class and the source text it covers. The preview format paints the file in
the terminal with the decorations applied.`,
		Example: `  mddecor decorate README.md
  mddecor decorate --format json notes.md
  mddecor decorate --format preview --highlight --line-numbers TODO.md
  mddecor decorate --viewport 20:60 long.md
  mddecor decorate --ignore "vendor/**" docs/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecorate(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, preview")
	cmd.Flags().StringVar(&flags.viewport, "viewport", "", "only decorate lines from:to (1-based, inclusive)")
	cmd.Flags().BoolVar(&flags.highlight, "highlight", false, "add syntax token classes inside code fences")
	cmd.Flags().BoolVar(&flags.lineNumbers, "line-numbers", false, "show line numbers in the preview")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip when walking directories")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

func runDecorate(cmd *cobra.Command, args []string, flags *decorateFlags) error {
	logger := logging.FromContext(cmd.Context())
	ctx := logging.WithLogger(cmd.Context(), logger)

	vp, err := parseViewport(flags.viewport)
	if err != nil {
		return err
	}

	cliCfg := &config.Config{Format: config.OutputFormat(flags.format)}
	if cmd.Flags().Changed("highlight") {
		cliCfg.Code.Highlight = config.Bool(flags.highlight)
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return err
	}

	opts, err := engineOptions(ctx, cfg, nil)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	decorateRunner := runner.New(func(ctx context.Context, path string) reporter.File {
		shown := displayPath(workDir, path)
		ctx, fileLogger := logging.WithPath(ctx, shown)
		file, err := fsutil.Read(ctx, path)
		if err != nil {
			fileLogger.Debug("read failed", logging.FieldError, err)
			return reporter.File{Path: shown, Err: err}
		}

		buf := editor.NewBuffer(shown, file.Content)
		set := engine.New(buf, opts).ViewportChanged(vp)
		fileLogger.Debug("decorated",
			logging.FieldLines, buf.LineCount(),
			logging.FieldDecorations, set.Len(),
		)
		return reporter.File{Path: shown, Doc: buf.Snapshot(), Set: set, Viewport: vp}
	})

	result, err := decorateRunner.Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
	})
	if err != nil {
		return fmt.Errorf("decorate run failed: %w", err)
	}

	logger.Debug("run complete",
		"files", result.Stats.FilesProcessed,
		"errored", result.Stats.FilesErrored,
		logging.FieldDecorations, result.Stats.Decorations,
		"checkboxes", result.Stats.Checkboxes,
		"checked", result.Stats.Checked,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd, cfg),
		Classes:     classesFor(cfg),
		CodeStyle:   cfg.Code.Style,
		LineNumbers: flags.lineNumbers,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result.Report()); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.Failed() {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}

// displayPath shows path relative to workDir when it lies below it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
