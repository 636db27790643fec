package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every style role with its default class.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Roles is the list of style roles documented by a full template.
	Roles []string

	// Prefix is the class prefix used to show default class names.
	Prefix string
}

const minimalTemplate = `# mddecor configuration
# See: https://github.com/yaklabco/mddecor

# Prefix prepended to every style class role
class_prefix: md-

# Per-role class overrides (role: class)
# classes:
#   heading-1: title
#   checkbox: todo-box

links:
  # Scheme used for link targets that have none
  default_scheme: https://
  # Key held while clicking to open a link: auto, meta, or ctrl
  modifier: auto

code:
  # Emit syntax token classes inside fenced code
  highlight: false
  # Guess a language for fences without an info string
  detect_language: true
  # Chroma style for the terminal preview
  style: monokai

# Panic when decorations come out of order (debugging aid)
# strict_order: false

# Log level: debug, info, warn, error
# log_level: warn

# Backups written before toggle rewrites a file
# backups:
#   enabled: false
#   mode: sidecar
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	var buf bytes.Buffer
	buf.WriteString(minimalTemplate)

	if opts.Full && len(opts.Roles) > 0 {
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "md-"
		}
		roles := slices.Clone(opts.Roles)
		slices.Sort(roles)

		buf.WriteString("\n# Available roles and their default classes:\n")
		for _, role := range roles {
			fmt.Fprintf(&buf, "#   %-22s %s%s\n", role, prefix, role)
		}
	}

	return buf.Bytes(), nil
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	if opts.Full {
		for _, role := range opts.Roles {
			cfg.Classes[role] = cfg.ClassPrefix + role
		}
	}

	jsonBytes, err := json.MarshalIndent(map[string]any{
		"class_prefix": cfg.ClassPrefix,
		"classes":      cfg.Classes,
		"links": map[string]any{
			"default_scheme": cfg.Links.DefaultScheme,
			"modifier":       cfg.Links.Modifier,
		},
		"code": map[string]any{
			"highlight":       Enabled(cfg.Code.Highlight),
			"detect_language": Enabled(cfg.Code.DetectLanguage),
			"style":           cfg.Code.Style,
		},
		"log_level": cfg.LogLevel,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return strings.Join([]string{
		"# mddecor configuration",
		"# See: https://github.com/yaklabco/mddecor",
	}, "\n")
}
