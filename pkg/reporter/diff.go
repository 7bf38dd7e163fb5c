package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/jiphy/internal/ui/pretty"
	"github.com/yaklabco/jiphy/pkg/diff"
	"github.com/yaklabco/jiphy/pkg/runner"
)

// DiffReporter prints each changed file as a unified diff labeled
// "<file>:before" and "<file>:after", followed by a git-style tally.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// diffTally accumulates the changed-file counts for the closing line.
type diffTally struct {
	files, additions, deletions int
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var tally diffTally
	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			fmt.Fprintln(r.bw, r.styles.FormatFileError(r.opts.displayPath(file.Path), file.Error))
		case file.Diff.HasChanges():
			tally.files++
			tally.additions += file.Diff.Additions
			tally.deletions += file.Diff.Deletions
			r.writeDiff(file.Diff)
		}
	}

	if tally.files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.tallyLine(tally))
	}
	return tally.files, nil
}

func (r *DiffReporter) writeDiff(d *diff.Diff) {
	text := d.Labeled(r.opts.displayPath(d.Path))
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		fmt.Fprintln(r.bw, r.styleLine(line))
	}
}

func (r *DiffReporter) styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
		return r.styles.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return r.styles.DiffRemove.Render(line)
	default:
		return r.styles.DiffContext.Render(line)
	}
}

// tallyLine renders "N files changed, N insertions(+), N deletions(-)",
// leaving out zero counts.
func (r *DiffReporter) tallyLine(t diffTally) string {
	parts := []string{fmt.Sprintf("%d %s changed", t.files, pluralWord(t.files, "file", "files"))}
	if t.additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", t.additions, pluralWord(t.additions, "insertion", "insertions"))))
	}
	if t.deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", t.deletions, pluralWord(t.deletions, "deletion", "deletions"))))
	}
	return strings.Join(parts, ", ")
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
