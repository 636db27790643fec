package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Document fields.
	FieldLine   = "line"
	FieldColumn = "column"
	FieldOffset = "offset"
	FieldLines  = "lines"
	FieldBytes  = "bytes"

	// Decoration fields.
	FieldDecorations = "decorations"
	FieldViewport    = "viewport"
	FieldLanguage    = "language"
	FieldClass       = "class"

	// Interaction fields.
	FieldURL      = "url"
	FieldModifier = "modifier"
	FieldChecked  = "checked"
	FieldDryRun   = "dry_run"
	FieldBackup   = "backup"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
