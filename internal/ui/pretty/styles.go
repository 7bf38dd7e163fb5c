// Package pretty renders jiphy's terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/jiphy/pkg/config"
)

// ANSI palette.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorCyan   = lipgloss.Color("14")
	colorGray   = lipgloss.Color("8")
	colorSilver = lipgloss.Color("7")
	colorNone   = lipgloss.Color("")
)

// Styles holds one lipgloss style per element of jiphy's output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Conversion lines and unterminated-construct warnings.
	FilePath   lipgloss.Style
	Arrow      lipgloss.Style
	Location   lipgloss.Style
	Kind       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the styles for jiphy's output. With colorEnabled false
// every style renders text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	style := func(fg lipgloss.Color, bold bool) lipgloss.Style {
		s := lipgloss.NewStyle()
		if !colorEnabled {
			return s
		}
		if fg != colorNone {
			s = s.Foreground(fg)
		}
		if bold {
			s = s.Bold(true)
		}
		return s
	}

	return &Styles{
		Error:   style(colorRed, true),
		Warning: style(colorYellow, true),

		FilePath:   style(colorNone, true),
		Arrow:      style(colorGray, false),
		Location:   style(colorGray, false),
		Kind:       style(colorCyan, false),
		Message:    style(colorNone, false),
		SourceLine: style(colorSilver, false),
		Caret:      style(colorYellow, true),

		DiffHeader:  style(colorNone, true),
		DiffHunk:    style(colorCyan, false),
		DiffAdd:     style(colorGreen, false),
		DiffRemove:  style(colorRed, false),
		DiffContext: style(colorGray, false),

		SummaryTitle: style(colorNone, true),
		SummaryValue: style(colorNone, false),
		Success:      style(colorGreen, true),
		Failure:      style(colorRed, true),

		TableHeader:    style(colorSilver, true),
		TableSeparator: style(colorGray, false),

		Dim:  style(colorGray, false),
		Bold: style(colorNone, true),
	}
}

// IsColorEnabled resolves a --color mode for writer. "auto" (and anything
// unrecognized) colors only a terminal, and never when NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch config.ColorMode(mode) {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
