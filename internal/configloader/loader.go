// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mddecor/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDDECOR_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mddecor.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mddecor/config.yaml)
//  6. System config (/etc/mddecor/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", opts.ExplicitPath, false},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		validation := ValidateWithFile(layerCfg, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		for _, w := range validation.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}

		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// WriteConfig writes content to path unless a file already exists there.
func WriteConfig(path string, content []byte, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
