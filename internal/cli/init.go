package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/configloader"
	"github.com/yaklabco/mddecor/internal/logging"
	"github.com/yaklabco/mddecor/pkg/config"
	"github.com/yaklabco/mddecor/pkg/decor"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mddecor configuration file",
		Long: `Create a new .mddecor.yml configuration file in the current directory
with the default settings. The file can be customized to rename classes,
change the link modifier, and turn syntax highlighting on.`,
		Example: `  mddecor init                      Create minimal .mddecor.yml
  mddecor init --full               Also list every role and its class
  mddecor init --format json        Create .mddecor.json instead
  mddecor init --output custom.yml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template listing every style role")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mddecor.yml or .mddecor.json)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".mddecor.yml"
		if flags.format == formatJSON {
			outputPath = ".mddecor.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Roles:  decor.Roles(),
		Prefix: decor.DefaultClassPrefix,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(absPath, content, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'mddecor classes' to see the class each role produces")

	return nil
}
