package decor

import (
	"strconv"
	"strings"
)

// Style roles. The class emitted for a role is the configured prefix plus
// the role, unless an override is configured for it.
const (
	RoleHeadingMarker   = "heading-marker"
	RoleBullet          = "bullet"
	RoleOrdered         = "ordered"
	RoleListMarker      = "list-marker"
	RoleTask            = "task"
	RoleTaskChecked     = "task-checked"
	RoleTaskSyntax      = "task-syntax"
	RoleCheckbox        = "checkbox"
	RoleBlockquote      = "blockquote"
	RoleQuoteMarker     = "quote-marker"
	RoleHorizontalRule  = "hr"
	RoleCodeFenceOpen   = "code-fence-open"
	RoleCodeFenceClose  = "code-fence-close"
	RoleCodeBlock       = "code-block"
	RoleCodeFenceMarker = "code-fence-marker"
	RoleCodeInfo        = "code-info"
	RoleCode            = "code"
	RoleCodeMarker      = "code-marker"
	RoleBold            = "bold"
	RoleBoldMarker      = "bold-marker"
	RoleItalic          = "italic"
	RoleItalicMarker    = "italic-marker"
	RoleStrike          = "strike"
	RoleStrikeMarker    = "strike-marker"
	RoleHighlight       = "highlight"
	RoleHighlightMarker = "highlight-marker"
	RoleLink            = "link"
	RoleLinkText        = "link-text"
	RoleLinkBracket     = "link-bracket"
	RoleLinkParen       = "link-paren"
	RoleLinkURL         = "link-url"
	RoleImage           = "image"
	RoleImageBang       = "image-bang"
	RoleImageAlt        = "image-alt"
	RoleImageBracket    = "image-bracket"
	RoleImageParen      = "image-paren"
	RoleImageURL        = "image-url"

	// RoleLangPrefix and RoleTokenPrefix are completed with a language slug
	// or a chroma token class.
	RoleLangPrefix  = "lang-"
	RoleTokenPrefix = "tok-"
)

// DefaultClassPrefix is prepended to every role.
const DefaultClassPrefix = "md-"

// RoleHeading returns the line role for a heading level, "h1" to "h6".
func RoleHeading(level int) string {
	return "h" + strconv.Itoa(level)
}

// Roles lists every fixed role in a stable order.
func Roles() []string {
	return []string{
		RoleHeading(1), RoleHeading(2), RoleHeading(3),
		RoleHeading(4), RoleHeading(5), RoleHeading(6), //nolint:mnd // Heading levels.
		RoleHeadingMarker, RoleBullet, RoleOrdered, RoleListMarker,
		RoleTask, RoleTaskChecked, RoleTaskSyntax, RoleCheckbox,
		RoleBlockquote, RoleQuoteMarker, RoleHorizontalRule,
		RoleCodeFenceOpen, RoleCodeFenceClose, RoleCodeBlock, RoleCodeFenceMarker, RoleCodeInfo,
		RoleCode, RoleCodeMarker, RoleBold, RoleBoldMarker, RoleItalic, RoleItalicMarker,
		RoleStrike, RoleStrikeMarker, RoleHighlight, RoleHighlightMarker,
		RoleLink, RoleLinkText, RoleLinkBracket, RoleLinkParen, RoleLinkURL,
		RoleImage, RoleImageBang, RoleImageAlt, RoleImageBracket, RoleImageParen, RoleImageURL,
	}
}

// Classes maps roles to the style class names handed to the host.
type Classes struct {
	// Prefix is prepended to roles without an override.
	Prefix string

	// Overrides replaces the class for individual roles.
	Overrides map[string]string
}

// DefaultClasses uses DefaultClassPrefix and no overrides.
func DefaultClasses() Classes {
	return Classes{Prefix: DefaultClassPrefix}
}

// Name returns the class for role.
func (c Classes) Name(role string) string {
	if name, ok := c.Overrides[role]; ok && name != "" {
		return name
	}
	return c.Prefix + role
}

// Role maps a class produced by Name back to its role.
func (c Classes) Role(class string) (string, bool) {
	for role, name := range c.Overrides {
		if name == class && name != "" {
			return role, true
		}
	}
	if role, ok := strings.CutPrefix(class, c.Prefix); ok && role != "" {
		return role, true
	}
	return "", false
}
