package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mddecor/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles derives help styles from the shared output styles.
func NewHelpStyles(styles *pretty.Styles) *HelpStyles {
	if !styles.ColorEnabled() {
		plain := lipgloss.NewStyle()
		return &HelpStyles{plain, plain, plain, plain, plain, plain}
	}
	return &HelpStyles{
		Command:    styles.Class.Bold(true),
		Heading:    styles.Warning,
		Subcommand: styles.Success.UnsetBold(),
		Flag:       styles.Kind,
		Example:    styles.Dim,
		Dim:        styles.Dim,
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: NewHelpStyles(pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":                 h.styles.Command.Render,
		"heading":                 h.styles.Heading.Render,
		"subcommand":              h.styles.Subcommand.Render,
		"example":                 h.styles.Example.Render,
		"dim":                     h.styles.Dim.Render,
		"flags":                   h.flagUsages,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// flagUsages styles pflag's usage block line by line.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles "  -f, --flag type   description". The name column ends at
// the first run of two or more spaces.
func (h *HelpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	split := strings.Index(body, "  ")
	if split < 0 {
		return line
	}
	names, desc := body[:split], strings.TrimLeft(body[split:], " ")

	tokens := strings.Fields(names)
	for i, token := range tokens {
		if name, ok := strings.CutSuffix(token, ","); ok && strings.HasPrefix(name, "-") {
			tokens[i] = h.styles.Flag.Render(name) + ","
		} else if strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.Flag.Render(token)
		} else {
			tokens[i] = h.styles.Dim.Render(token)
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + desc
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()
	render := func(name, text string, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
