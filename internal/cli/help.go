package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/jiphy/internal/ui/pretty"
	"github.com/yaklabco/jiphy/pkg/construct"
)

// annotationTargets marks commands whose help lists the supported targets.
const annotationTargets = "jiphy/targets"

// flagLinePattern splits a pflag usage line into indent, names, value type,
// gap and description.
var flagLinePattern = regexp.MustCompile(`^(\s*)((?:-\w, )?--[\w-]+)(?: (\w+))?(\s{2,})(.*)$`)

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if targets .}}

{{ heading "Targets:" }}{{range targetLines}}
  {{ . }}{{end}}
{{- end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

// helpRenderer renders cobra help through the shared pretty styles.
type helpRenderer struct {
	styles *pretty.Styles
	tmpl   *template.Template
}

func newHelpRenderer(colorMode string, w io.Writer) (*helpRenderer, error) {
	h := &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))}

	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":     h.styles.SummaryTitle.Render,
		"command":     h.styles.Bold.Render,
		"subcommand":  h.styles.FilePath.Render,
		"dim":         h.styles.Dim.Render,
		"flags":       h.flagUsages,
		"pad":         padHelp,
		"trimRight":   trimLines,
		"targets":     showsTargets,
		"targetLines": h.targetLines,
	}).Parse(helpTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse help template: %w", err)
	}
	h.tmpl = tmpl
	return h, nil
}

// applyHelp installs styled help and usage output on cmd and its
// subcommands. A template error leaves cobra's default help in place.
func applyHelp(cmd *cobra.Command, colorMode string, w io.Writer) {
	h, err := newHelpRenderer(colorMode, w)
	if err != nil {
		return
	}

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.tmpl.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.tmpl.Execute(c.OutOrStderr(), c)
	})
}

// flagUsages styles each pflag usage line: names in the kind color, the
// value type dimmed.
func (h *helpRenderer) flagUsages(usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	return strings.Join(lo.Map(lines, func(line string, _ int) string {
		m := flagLinePattern.FindStringSubmatch(line)
		if m == nil {
			return strings.TrimRight(line, " ")
		}
		indent, names, valueType, gap, desc := m[1], m[2], m[3], m[4], m[5]

		styled := indent + h.styles.Kind.Render(names)
		if valueType != "" {
			styled += " " + h.styles.Dim.Render(valueType)
		}
		return styled + gap + desc
	}), "\n")
}

func (h *helpRenderer) targetLines() []string {
	return lo.Map(construct.Targets[:], func(t construct.Target, _ int) string {
		return h.styles.Kind.Render(padHelp(t.String(), 4)) + t.Name() + " (." + t.Extension() + ")"
	})
}

func showsTargets(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[annotationTargets]
	return ok
}

func padHelp(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
