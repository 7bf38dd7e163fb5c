package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/jiphy/internal/ui/pretty"
	"github.com/yaklabco/jiphy/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to convert."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintln(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatConversion(
			path,
			r.opts.displayPath(file.OutputPath),
			status(file, r.opts.DryRun),
		))

		if file.Result == nil {
			continue
		}
		for _, diag := range file.Result.Diagnostics {
			var sourceLine string
			if r.opts.ShowContext {
				sourceLine = lineOf(file.Result.Input, diag.Line)
			}
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag, sourceLine))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return len(result.Files), nil
}

// lineOf returns the 1-based line n of content without its line ending.
func lineOf(content []byte, n int) string {
	for i := 1; len(content) > 0; i++ {
		line, rest, _ := bytes.Cut(content, []byte("\n"))
		if i == n {
			return string(bytes.TrimSuffix(line, []byte("\r")))
		}
		content = rest
	}
	return ""
}
