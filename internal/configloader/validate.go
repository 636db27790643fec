package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mddecor/pkg/config"
	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/highlight"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "links.modifier").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown roles).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = []string{"debug", "info", "warn", "error"}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = []string{"sidecar", "xdg"}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, table, json, preview", cfg.Format),
		})
	}

	if cfg.Links.Modifier != "" && !cfg.Links.Modifier.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "links.modifier",
			Value:   cfg.Links.Modifier,
			Message: fmt.Sprintf("invalid modifier %q; must be one of: auto, meta, ctrl", cfg.Links.Modifier),
		})
	}

	if scheme := cfg.Links.DefaultScheme; scheme != "" && !strings.HasSuffix(scheme, ":") && !strings.HasSuffix(scheme, "://") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "links.default_scheme",
			Value:   scheme,
			Message: fmt.Sprintf("invalid scheme %q; expected a form like https://", scheme),
		})
	}

	if cfg.LogLevel != "" && !slices.Contains(knownLogLevels, strings.ToLower(cfg.LogLevel)) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: %s", cfg.LogLevel, strings.Join(knownLogLevels, ", ")),
		})
	}

	if cfg.Backups.Mode != "" && !slices.Contains(knownBackupModes, cfg.Backups.Mode) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, xdg", cfg.Backups.Mode),
		})
	}

	if cfg.Code.Style != "" && !highlight.HasStyle(cfg.Code.Style) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "code.style",
			Value:   cfg.Code.Style,
			Message: fmt.Sprintf("unknown style %q; the fallback style will be used", cfg.Code.Style),
		})
	}

	validateClasses(cfg, result)

	return result
}

// validateClasses warns about overrides for roles the builder never emits.
func validateClasses(cfg *config.Config, result *ValidationResult) {
	roles := decor.Roles()

	keys := make([]string, 0, len(cfg.Classes))
	for role := range cfg.Classes {
		keys = append(keys, role)
	}
	slices.Sort(keys)

	for _, role := range keys {
		if strings.TrimSpace(cfg.Classes[role]) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "classes." + role,
				Value:   cfg.Classes[role],
				Message: "class name must not be empty",
			})
			continue
		}
		if slices.Contains(roles, role) ||
			strings.HasPrefix(role, decor.RoleLangPrefix) ||
			strings.HasPrefix(role, decor.RoleTokenPrefix) {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "classes." + role,
			Value:   role,
			Message: fmt.Sprintf("unknown role %q; it will be ignored", role),
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
