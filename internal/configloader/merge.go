package configloader

import (
	"maps"

	"github.com/yaklabco/mddecor/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Optional flags (*bool): override wins when non-nil, so a layer can turn a default off
//   - Classes: deep merge, override's entries win
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.ClassPrefix != "" {
		result.ClassPrefix = override.ClassPrefix
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Links.DefaultScheme != "" {
		result.Links.DefaultScheme = override.Links.DefaultScheme
	}
	if override.Links.Modifier != "" {
		result.Links.Modifier = override.Links.Modifier
	}
	if override.Code.Style != "" {
		result.Code.Style = override.Code.Style
	}

	if override.Code.Highlight != nil {
		result.Code.Highlight = override.Code.Highlight
	}
	if override.Code.DetectLanguage != nil {
		result.Code.DetectLanguage = override.Code.DetectLanguage
	}
	if override.StrictOrder != nil {
		result.StrictOrder = override.StrictOrder
	}

	// CLI switches can only turn these on.
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.NoColor {
		result.NoColor = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Classes = mergeClasses(base.Classes, override.Classes)

	return &result
}

func mergeClasses(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
