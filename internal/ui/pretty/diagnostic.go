package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/jiphy/pkg/convert"
)

// FormatDiagnostic formats an unterminated-construct diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(path string, diag convert.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), diag.Line, diag.Column)

	// Main line: location  warning  message  (kind)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Warning.Render("warning"),
		s.Message.Render(diag.Message()),
		s.Kind.Render("("+diag.Kind.String()+")"),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatConversion formats one "source -> output (status)" line.
func (s *Styles) FormatConversion(source, output, status string) string {
	return fmt.Sprintf("%s %s %s %s",
		s.FilePath.Render(source),
		s.Arrow.Render("->"),
		output,
		s.Dim.Render("("+status+")"),
	)
}

// FormatFileError formats a file that failed to convert.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}
