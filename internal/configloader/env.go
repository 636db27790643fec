package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/yaklabco/mddecor/pkg/config"
)

// envVarPrefix is the prefix for all mddecor environment variables.
const envVarPrefix = "MDDECOR_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CLASS_PREFIX":         {"class_prefix", envTypeString, "Prefix for style classes (default md-)"},
	"LINKS_DEFAULT_SCHEME": {"links.default_scheme", envTypeString, "Scheme for links without one (default https://)"},
	"LINKS_MODIFIER":       {"links.modifier", envTypeString, "Link activation modifier: auto, meta, or ctrl"},
	"CODE_HIGHLIGHT":       {"code.highlight", envTypeBool, "Emit syntax token classes in fences: true or false"},
	"CODE_DETECT_LANGUAGE": {"code.detect_language", envTypeBool, "Detect fence languages: true or false"},
	"CODE_STYLE":           {"code.style", envTypeString, "Chroma style for the terminal preview"},
	"STRICT_ORDER":         {"strict_order", envTypeBool, "Panic on unordered decorations: true or false"},
	"LOG_LEVEL":            {"log_level", envTypeString, "Log level: debug, info, warn, or error"},
	"FORMAT":               {"format", envTypeString, "Output format: text, table, json, or preview"},
	"BACKUPS_ENABLED":      {"backups.enabled", envTypeBool, "Write backups before toggle: true or false"},
	"BACKUPS_MODE":         {"backups.mode", envTypeString, "Backup mode: sidecar or xdg"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with MDDECOR_ (e.g., MDDECOR_CODE_HIGHLIGHT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "class_prefix":
		cfg.ClassPrefix = value
	case "links.default_scheme":
		cfg.Links.DefaultScheme = value
	case "links.modifier":
		cfg.Links.Modifier = config.Modifier(value)
	case "code.style":
		cfg.Code.Style = value
	case "log_level":
		cfg.LogLevel = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "code.highlight":
		cfg.Code.Highlight = config.Bool(value)
	case "code.detect_language":
		cfg.Code.DetectLanguage = config.Bool(value)
	case "strict_order":
		cfg.StrictOrder = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}
