package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/highlight"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// Checkbox glyphs drawn in place of the "[ ]" and "[x]" tokens.
const (
	glyphUnchecked = "☐"
	glyphChecked   = "☑"
)

// Preview renders a document with its decorations drawn as terminal styles,
// the way an editor host would paint them.
type Preview struct {
	styles    *Styles
	classes   decor.Classes
	codeStyle string
	roles     map[string]lipgloss.Style

	// LineNumbers prefixes every line with its number.
	LineNumbers bool
}

// NewPreview creates a preview renderer. classes must be the mapping the
// decorations were built with; codeStyle names the chroma style for tokens.
func NewPreview(styles *Styles, classes decor.Classes, codeStyle string) *Preview {
	preview := &Preview{
		styles:    styles,
		classes:   classes,
		codeStyle: codeStyle,
		roles:     map[string]lipgloss.Style{},
	}
	if styles.ColorEnabled() {
		preview.roles = roleStyles()
	}
	return preview
}

func roleStyles() map[string]lipgloss.Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

	styles := map[string]lipgloss.Style{
		decor.RoleHeading(1):      heading.Underline(true),
		decor.RoleBold:            lipgloss.NewStyle().Bold(true),
		decor.RoleItalic:          lipgloss.NewStyle().Italic(true),
		decor.RoleStrike:          lipgloss.NewStyle().Strikethrough(true),
		decor.RoleHighlight:       lipgloss.NewStyle().Background(lipgloss.Color("11")).Foreground(lipgloss.Color("0")),
		decor.RoleCode:            lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		decor.RoleCodeBlock:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		decor.RoleCodeInfo:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Italic(true),
		decor.RoleLinkText:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		decor.RoleLinkURL:         dim.Underline(true),
		decor.RoleImageAlt:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Italic(true),
		decor.RoleImageURL:        dim.Underline(true),
		decor.RoleBlockquote:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("7")),
		decor.RoleHorizontalRule:  dim,
		decor.RoleTaskChecked:     dim.Strikethrough(true),
		decor.RoleCheckbox:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		decor.RoleListMarker:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		decor.RoleQuoteMarker:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		decor.RoleCodeFenceMarker: dim,
	}
	for level := 2; level <= 6; level++ {
		styles[decor.RoleHeading(level)] = heading
	}
	for _, role := range []string{
		decor.RoleHeadingMarker, decor.RoleTaskSyntax,
		decor.RoleCodeMarker, decor.RoleBoldMarker, decor.RoleItalicMarker,
		decor.RoleStrikeMarker, decor.RoleHighlightMarker,
		decor.RoleLinkBracket, decor.RoleLinkParen,
		decor.RoleImageBang, decor.RoleImageBracket, decor.RoleImageParen,
	} {
		styles[role] = dim
	}
	return styles
}

// styleFor resolves the terminal style of a decoration class.
func (p *Preview) styleFor(class string) (lipgloss.Style, bool) {
	role, ok := p.classes.Role(class)
	if !ok {
		return lipgloss.Style{}, false
	}
	if style, ok := p.roles[role]; ok {
		return style, true
	}
	token, isToken := strings.CutPrefix(role, decor.RoleTokenPrefix)
	if !isToken || !p.styles.ColorEnabled() {
		return lipgloss.Style{}, false
	}
	colour, ok := highlight.Colour(p.codeStyle, token)
	if !ok {
		return lipgloss.Style{}, false
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(colour))
	p.roles[role] = style
	return style, true
}

// Render draws the lines of doc inside vp.
func (p *Preview) Render(doc mdast.Document, set decor.Set, vp decor.Viewport) string {
	first, last := vp.Lines(doc.LineCount())

	byLine := make(map[int][]decor.Decoration)
	for _, d := range set.All() {
		byLine[d.Line] = append(byLine[d.Line], d)
	}

	width := len(fmt.Sprint(last))
	var builder strings.Builder
	for n := first; n <= last; n++ {
		if p.LineNumbers {
			builder.WriteString(p.styles.Gutter.Render(fmt.Sprintf("%*d │ ", width, n)))
		}
		builder.WriteString(p.renderLine(doc.Line(n), byLine[n]))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// styledRange is a range decoration resolved to line-relative bytes.
type styledRange struct {
	from, to int
	style    lipgloss.Style
}

func (p *Preview) renderLine(line mdast.Line, decorations []decor.Decoration) string {
	text := line.Text
	base := lipgloss.NewStyle()
	var ranges []styledRange
	var box *decor.Checkbox
	cuts := []int{0, len(text)}

	for _, d := range decorations {
		switch d.Kind {
		case decor.LineKind:
			if style, ok := p.styleFor(d.Class); ok {
				base = style.Inherit(base)
			}
		case decor.RangeKind:
			style, ok := p.styleFor(d.Class)
			if !ok {
				continue
			}
			from := min(max(d.From-line.StartOffset, 0), len(text))
			to := min(max(d.To-line.StartOffset, 0), len(text))
			ranges = append(ranges, styledRange{from: from, to: to, style: style})
			cuts = append(cuts, from, to)
		case decor.WidgetKind:
			if d.Checkbox != nil {
				box = d.Checkbox
				edit := d.Checkbox.EditPosition - line.StartOffset
				cuts = append(cuts, edit, edit+len(d.Checkbox.Token))
			}
		}
	}

	// Wider ranges first so nested ranges override the ones around them.
	slices.SortStableFunc(ranges, func(a, b styledRange) int {
		return (b.to - b.from) - (a.to - a.from)
	})

	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var builder strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		from, to := cuts[i], cuts[i+1]
		if from < 0 || to > len(text) || from >= to {
			continue
		}
		style := base
		for _, r := range ranges {
			if r.from <= from && to <= r.to {
				style = r.style.Inherit(style)
			}
		}

		segment := text[from:to]
		if box != nil && line.StartOffset+from == box.EditPosition {
			segment = glyphUnchecked
			if box.Checked {
				segment = glyphChecked
			}
			if checkbox, ok := p.styleFor(p.classes.Name(decor.RoleCheckbox)); ok {
				style = checkbox.Inherit(style)
			}
		}
		builder.WriteString(style.Render(segment))
	}
	return builder.String()
}
