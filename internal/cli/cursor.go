package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/logging"
	"github.com/yaklabco/mddecor/pkg/editor"
	"github.com/yaklabco/mddecor/pkg/engine"
	"github.com/yaklabco/mddecor/pkg/fsutil"
)

func newCursorCommand() *cobra.Command {
	point := &pointFlags{}

	cmd := &cobra.Command{
		Use:   "cursor <file> --line L --col C",
		Short: "Report whether a cursor position is inside fenced code",
		Long: `Place the cursor at byte column C of line L and print "code" when it sits
inside a fenced code block (fence lines included) or "text" otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			file, err := fsutil.Read(cmd.Context(), path)
			if err != nil {
				return err
			}

			opts, err := engineOptions(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}

			buf := editor.NewBuffer(path, file.Content)
			offset, ok := buf.Snapshot().Offset(point.line, point.col)
			if !ok {
				return fmt.Errorf("%s:%d:%d: position is outside the document", path, point.line, point.col)
			}

			inCode := engine.New(buf, opts).SelectionChanged(offset)
			logging.FromContext(cmd.Context()).Debug("cursor",
				logging.FieldPath, path,
				logging.FieldOffset, offset,
				"in_code", inCode,
			)

			state := "text"
			if buf.CursorInCode() {
				state = "code"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), state)
			return err
		},
	}

	point.register(cmd, "1-based byte column")

	return cmd
}
