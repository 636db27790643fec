package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/configloader"
	"github.com/yaklabco/mddecor/internal/logging"
	"github.com/yaklabco/mddecor/pkg/config"
	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/engine"
	"github.com/yaklabco/mddecor/pkg/fsutil"
	"github.com/yaklabco/mddecor/pkg/interact"
)

// loadConfig resolves the configuration for cmd, with cliCfg holding the
// values set by command flags.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(cmd.Context())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}

	cfg := result.Config
	if !cmd.Flags().Changed("debug") && !cmd.Flags().Changed("log-level") {
		logging.SetLevel(cfg.LogLevel)
	}

	logger.Debug("configuration loaded",
		"class_prefix", cfg.ClassPrefix,
		"highlight", config.Enabled(cfg.Code.Highlight),
		"detect_language", config.Enabled(cfg.Code.DetectLanguage),
		logging.FieldModifier, cfg.Links.Modifier,
	)

	return cfg, nil
}

// colorMode returns the --color flag, forced to "never" when the
// configuration disables colour.
func colorMode(cmd *cobra.Command, cfg *config.Config) string {
	if cfg != nil && cfg.NoColor {
		return "never"
	}
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}

func classesFor(cfg *config.Config) decor.Classes {
	return decor.Classes{Prefix: cfg.ClassPrefix, Overrides: cfg.Classes}
}

func buildOptions(cfg *config.Config, logger *log.Logger) decor.Options {
	classes := classesFor(cfg)
	return decor.Options{
		Classes:        &classes,
		DetectLanguage: config.Enabled(cfg.Code.DetectLanguage),
		Highlight:      config.Enabled(cfg.Code.Highlight),
		StrictOrder:    config.Enabled(cfg.StrictOrder),
		Logger:         logger,
	}
}

// engineOptions wires the configuration into an engine. opener may be nil.
func engineOptions(ctx context.Context, cfg *config.Config, opener interact.Opener) (engine.Options, error) {
	logger := logging.FromContext(ctx)

	activation, err := interact.ModifierByName(string(cfg.Links.Modifier))
	if err != nil {
		return engine.Options{}, err
	}

	return engine.Options{
		Build:      buildOptions(cfg, logger),
		LinkScheme: cfg.Links.DefaultScheme,
		Activation: activation,
		Opener:     opener,
		Logger:     logger,
	}, nil
}

func backupsFor(cfg *config.Config) fsutil.Backups {
	return fsutil.Backups{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// heldModifiers returns the key state of a click made with the configured
// activation modifier held.
func heldModifiers(mod config.Modifier) interact.Modifiers {
	switch mod {
	case config.ModifierMeta:
		return interact.Modifiers{Meta: true}
	case config.ModifierCtrl:
		return interact.Modifiers{Ctrl: true}
	default:
		if runtime.GOOS == "darwin" {
			return interact.Modifiers{Meta: true}
		}
		return interact.Modifiers{Ctrl: true}
	}
}

// errInvalidViewport is returned for a malformed --viewport value.
var errInvalidViewport = errors.New("invalid viewport")

// parseViewport reads "from:to" with either side optional. Both bounds are
// 1-based and inclusive.
func parseViewport(spec string) (decor.Viewport, error) {
	if spec == "" {
		return decor.Full(), nil
	}

	fromText, toText, ok := strings.Cut(spec, ":")
	if !ok {
		return decor.Viewport{}, fmt.Errorf("%w %q: want from:to", errInvalidViewport, spec)
	}

	var vp decor.Viewport
	for _, bound := range []struct {
		text string
		dst  *int
	}{{fromText, &vp.FromLine}, {toText, &vp.ToLine}} {
		if bound.text == "" {
			continue
		}
		n, err := strconv.Atoi(bound.text)
		if err != nil || n < 1 {
			return decor.Viewport{}, fmt.Errorf("%w %q: bounds must be positive line numbers", errInvalidViewport, spec)
		}
		*bound.dst = n
	}

	if vp.ToLine > 0 && vp.FromLine > vp.ToLine {
		return decor.Viewport{}, fmt.Errorf("%w %q: from is after to", errInvalidViewport, spec)
	}
	return vp, nil
}
