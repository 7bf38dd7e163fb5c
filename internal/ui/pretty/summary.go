package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/jiphy/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted, 2 written, 1 warning, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to convert") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s converted", stats.FilesConverted, plural(stats.FilesConverted, wordFile, wordFiles)),
	}

	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}

	if unchanged := stats.FilesConverted - stats.FilesWritten; unchanged > 0 && stats.FilesWritten > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", unchanged)))
	}

	if stats.Unterminated > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s",
			stats.Unterminated, plural(stats.Unterminated, "warning", "warnings"))))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files converted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)) + "\n")

	targets := lo.Keys(stats.ByTarget)
	slices.Sort(targets)
	for _, target := range targets {
		builder.WriteString(fmt.Sprintf("    to %-14s %s\n", target+":",
			s.SummaryValue.Render(strconv.Itoa(stats.ByTarget[target]))))
	}

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.Unterminated > 0 {
		builder.WriteString("  Unterminated:      " +
			s.Warning.Render(strconv.Itoa(stats.Unterminated)) +
			s.Dim.Render(fmt.Sprintf(" in %d %s", stats.FilesWithUnterminated,
				plural(stats.FilesWithUnterminated, wordFile, wordFiles))) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Conversion failed"))
	case stats.Unterminated > 0:
		builder.WriteString(s.Warning.Render("Conversion completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
