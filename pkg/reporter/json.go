package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/yaklabco/jiphy/pkg/convert"
	"github.com/yaklabco/jiphy/pkg/runner"
)

// jsonSchemaVersion changes whenever a field is renamed or removed.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one converted (or failed) file.
type JSONFileResult struct {
	Path        string           `json:"path"`
	OutputPath  string           `json:"outputPath,omitempty"`
	Target      string           `json:"target,omitempty"`
	Changed     bool             `json:"changed"`
	Written     bool             `json:"written"`
	BackedUp    bool             `json:"backedUp,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is an unterminated construct.
type JSONDiagnostic struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Opening string `json:"opening"`
	Message string `json:"message"`
}

// JSONSummary mirrors runner.Stats.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesConverted  int            `json:"filesConverted"`
	FilesChanged    int            `json:"filesChanged"`
	FilesWritten    int            `json:"filesWritten"`
	FilesErrored    int            `json:"filesErrored"`
	Unterminated    int            `json:"unterminated"`
	ByTarget        map[string]int `json:"byTarget"`
}

// JSONReporter writes a single JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter returns a JSONReporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := JSONOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{ByTarget: map[string]int{}},
	}
	if result != nil {
		doc.Files = lo.Map(result.Files, func(file runner.FileOutcome, _ int) JSONFileResult {
			return jsonFile(r.opts, file)
		})
		doc.Summary = jsonSummary(result.Stats)
	}

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return len(doc.Files), nil
}

func jsonFile(opts Options, file runner.FileOutcome) JSONFileResult {
	out := JSONFileResult{
		Path:        opts.displayPath(file.Path),
		Diagnostics: []JSONDiagnostic{},
	}
	if file.Error != nil {
		out.Error = file.Error.Error()
	}
	if file.Result == nil {
		return out
	}

	out.OutputPath = opts.displayPath(file.OutputPath)
	out.Target = file.Target.String()
	out.Changed = file.Result.Changed()
	out.Written = file.Written
	out.BackedUp = file.BackedUp
	out.Diagnostics = lo.Map(file.Result.Diagnostics, func(d convert.Diagnostic, _ int) JSONDiagnostic {
		return JSONDiagnostic{
			Kind:    d.Kind.String(),
			Line:    d.Line,
			Column:  d.Column,
			Opening: d.Opening,
			Message: d.Message(),
		}
	})
	return out
}

func jsonSummary(stats runner.Stats) JSONSummary {
	return JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesConverted:  stats.FilesConverted,
		FilesChanged:    stats.FilesChanged,
		FilesWritten:    stats.FilesWritten,
		FilesErrored:    stats.FilesErrored,
		Unterminated:    stats.Unterminated,
		ByTarget:        lo.Assign(stats.ByTarget),
	}
}
