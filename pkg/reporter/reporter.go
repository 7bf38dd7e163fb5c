// Package reporter writes conversion results in text, diff, JSON and
// summary form.
package reporter

import (
	"context"

	"github.com/yaklabco/jiphy/pkg/runner"
)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// status describes what happened to a converted file.
func status(file runner.FileOutcome, dryRun bool) string {
	switch {
	case file.Written && file.BackedUp:
		return "written, backup created"
	case file.Written:
		return "written"
	case dryRun:
		return "dry run"
	default:
		return "unchanged"
	}
}
