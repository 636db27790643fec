package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/ui/pretty"
	"github.com/yaklabco/mddecor/pkg/decor"
)

const formatJSON = "json"

// classInfo represents a role in JSON output.
type classInfo struct {
	Role  string `json:"role"`
	Class string `json:"class"`
}

func newClassesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List style roles and the classes they produce",
		Long: `List every style role the decoration builder emits together with the
class name it resolves to under the current configuration. Language and
syntax token classes (lang-*, tok-*) are not listed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			classes := classesFor(cfg)
			roles := decor.Roles()
			infos := make([]classInfo, 0, len(roles))
			for _, role := range roles {
				infos = append(infos, classInfo{Role: role, Class: classes.Name(role)})
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding classes: %w", err)
				}
				return nil
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd, cfg), out))
			width := 0
			for _, info := range infos {
				width = max(width, runewidth.StringWidth(info.Role))
			}
			for _, info := range infos {
				if _, err := fmt.Fprintf(out, "%s  %s\n",
					styles.Kind.Render(runewidth.FillRight(info.Role, width)),
					styles.Class.Render(info.Class)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
