// Package config defines core configuration types for mddecor.
// These types are pure data structures; discovery and merging live in internal/configloader.
package config

// OutputFormat specifies the output format for decoration listings.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatPreview OutputFormat = "preview"
)

// IsValid reports whether f names a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatPreview:
		return true
	default:
		return false
	}
}

// Modifier names the key that must be held for a click to open a link.
type Modifier string

const (
	ModifierAuto Modifier = "auto" // meta on darwin, ctrl elsewhere
	ModifierMeta Modifier = "meta"
	ModifierCtrl Modifier = "ctrl"
)

// IsValid reports whether m names a known modifier.
func (m Modifier) IsValid() bool {
	switch m {
	case ModifierAuto, ModifierMeta, ModifierCtrl:
		return true
	default:
		return false
	}
}

// DefaultLinkScheme is prepended to link targets that carry no scheme.
const DefaultLinkScheme = "https://"

// DefaultStyle is the chroma style used for the terminal preview.
const DefaultStyle = "monokai"

// LinksConfig controls link click resolution.
type LinksConfig struct {
	DefaultScheme string   `mapstructure:"default_scheme" yaml:"default_scheme,omitempty"`
	Modifier      Modifier `mapstructure:"modifier" yaml:"modifier,omitempty"`
}

// CodeConfig controls decoration of fenced code blocks.
// Pointer fields distinguish "unset" from an explicit false when layers merge.
type CodeConfig struct {
	// Highlight emits chroma token decorations inside fences.
	Highlight *bool `mapstructure:"highlight" yaml:"highlight,omitempty"`

	// DetectLanguage guesses a language for fences without an info string.
	DetectLanguage *bool `mapstructure:"detect_language" yaml:"detect_language,omitempty"`

	// Style is the chroma style used by the preview renderer.
	Style string `mapstructure:"style" yaml:"style,omitempty"`
}

// BackupsConfig controls backup behavior when toggling checkboxes in files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "xdg"
}

// Config is the root configuration structure for mddecor.
type Config struct {
	// ClassPrefix is prepended to every style class role.
	ClassPrefix string `mapstructure:"class_prefix" yaml:"class_prefix,omitempty"`

	// Classes overrides the full class name for individual roles.
	Classes map[string]string `mapstructure:"classes" yaml:"classes,omitempty"`

	Links LinksConfig `mapstructure:"links" yaml:"links,omitempty"`

	Code CodeConfig `mapstructure:"code" yaml:"code,omitempty"`

	// StrictOrder panics when the builder produces an unordered decoration set.
	StrictOrder *bool `mapstructure:"strict_order" yaml:"strict_order,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level,omitempty"`

	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format for decorate.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// DryRun prints the diff a toggle would make without writing it.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing files.
	NoBackups bool `mapstructure:"-" yaml:"-"`

	// NoColor disables styled output.
	NoColor bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ClassPrefix: "md-",
		Classes:     make(map[string]string),
		Links: LinksConfig{
			DefaultScheme: DefaultLinkScheme,
			Modifier:      ModifierAuto,
		},
		Code: CodeConfig{
			Highlight:      Bool(false),
			DetectLanguage: Bool(true),
			Style:          DefaultStyle,
		},
		StrictOrder: Bool(false),
		LogLevel:    "warn",
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Enabled dereferences an optional flag, treating nil as false.
func Enabled(v *bool) bool {
	return v != nil && *v
}
