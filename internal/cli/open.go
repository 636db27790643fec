package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/logging"
	"github.com/yaklabco/mddecor/pkg/config"
	"github.com/yaklabco/mddecor/pkg/editor"
	"github.com/yaklabco/mddecor/pkg/engine"
	"github.com/yaklabco/mddecor/pkg/fsutil"
	"github.com/yaklabco/mddecor/pkg/interact"
)

type pointFlags struct {
	line int
	col  int
}

func (p *pointFlags) register(cmd *cobra.Command, colHelp string) {
	cmd.Flags().IntVarP(&p.line, "line", "l", 0, "1-based line")
	cmd.Flags().IntVarP(&p.col, "col", "c", 1, colHelp)
	_ = cmd.MarkFlagRequired("line")
}

type openFlags struct {
	point    pointFlags
	modifier string
	keys     string
	print    bool
}

func newOpenCommand() *cobra.Command {
	flags := &openFlags{}

	cmd := &cobra.Command{
		Use:   "open <file> --line L --col C",
		Short: "Open the link under a screen position",
		Long: `Simulate a click at screen cell (line, col) of a file and open the link
found there. The click only activates a link while the configured modifier
is held; by default the click is made with it held. Targets without a
scheme get links.default_scheme.`,
		Example: `  mddecor open README.md --line 12 --col 8
  mddecor open README.md -l 12 -c 8 --print
  mddecor open README.md -l 12 -c 8 --modifier meta --keys ctrl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, args[0], flags)
		},
	}

	flags.point.register(cmd, "1-based screen column (wide characters take two)")
	cmd.Flags().StringVar(&flags.modifier, "modifier", "", "activation modifier: auto, meta, ctrl (overrides config)")
	cmd.Flags().StringVar(&flags.keys, "keys", "", "modifier keys held during the click, e.g. ctrl+shift")
	cmd.Flags().BoolVar(&flags.print, "print", false, "print the URL instead of opening it")

	return cmd
}

func runOpen(cmd *cobra.Command, path string, flags *openFlags) error {
	logger := logging.FromContext(cmd.Context())

	cfg, err := loadConfig(cmd, &config.Config{
		Links: config.LinksConfig{Modifier: config.Modifier(flags.modifier)},
	})
	if err != nil {
		return err
	}

	held := heldModifiers(cfg.Links.Modifier)
	if flags.keys != "" {
		if held, err = interact.ParseModifiers(flags.keys); err != nil {
			return err
		}
	}

	file, err := fsutil.Read(cmd.Context(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var opened string
	var opener interact.Opener = interact.OpenerFunc(func(url string) error {
		opened = url
		if flags.print {
			_, err := fmt.Fprintln(out, url)
			return err
		}
		return interact.BrowserOpener{}.Open(url)
	})

	opts, err := engineOptions(cmd.Context(), cfg, opener)
	if err != nil {
		return err
	}

	buf := editor.NewBuffer(path, file.Content)
	eng := engine.New(buf, opts)
	eng.DocumentChanged()

	click := interact.Click{X: flags.point.col - 1, Y: flags.point.line - 1, Modifiers: held}
	if !eng.Click(click) {
		return fmt.Errorf("%s:%d:%d: %w: no link opened", path, flags.point.line, flags.point.col, ErrNotHandled)
	}

	logger.Info("opened link", logging.FieldURL, opened, logging.FieldModifier, cfg.Links.Modifier)
	return nil
}
