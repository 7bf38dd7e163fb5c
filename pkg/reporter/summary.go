package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/yaklabco/jiphy/internal/ui/pretty"
	"github.com/yaklabco/jiphy/pkg/runner"
)

// SummaryReporter formats results as a per-file table followed by
// aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil || len(result.Files) == 0 {
		if _, err := fmt.Fprintln(r.out, r.styles.Dim.Render("No files to convert.")); err != nil {
			return 0, fmt.Errorf("write summary: %w", err)
		}
		return 0, nil
	}

	table := pretty.NewTable(r.styles, "FILE", "TARGET", "STATUS", "WARNINGS")

	var converted, failed [][]string
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			failed = append(failed, []string{path, "", "failed", ""})
			continue
		}
		warnings := 0
		if file.Result != nil {
			warnings = len(file.Result.Diagnostics)
		}
		converted = append(converted, []string{
			path,
			file.Target.String(),
			status(file, r.opts.DryRun),
			strconv.Itoa(warnings),
		})
	}
	table.AddGroup(converted...)
	table.AddGroup(failed...)

	if _, err := fmt.Fprint(r.out, table.String()+r.styles.FormatSummary(result.Stats)); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}

	return len(result.Files), nil
}
