package runner

import (
	"github.com/yaklabco/jiphy/pkg/construct"
	"github.com/yaklabco/jiphy/pkg/convert"
	"github.com/yaklabco/jiphy/pkg/diff"
)

// FileOutcome describes what happened to one source file.
type FileOutcome struct {
	// Path is the source file that was processed.
	Path string

	// OutputPath is where the converted text goes.
	OutputPath string

	// Target is the syntax the file was converted into.
	Target construct.Target

	// Result holds the conversion result.
	// May be nil if the file encountered an error during processing.
	Result *convert.Result

	// Diff is the unified diff between source and converted text.
	// Nil when conversion changed nothing.
	Diff *diff.Diff

	// Written is true when OutputPath was (re)written.
	Written bool

	// BackedUp is true when a backup of the previous OutputPath was created.
	BackedUp bool

	// Error is set if the file could not be processed.
	Error error
}

// Output returns the converted text, or nil when processing failed.
func (o FileOutcome) Output() []byte {
	if o.Result == nil {
		return nil
	}
	return o.Result.Output
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files successfully converted.
	FilesConverted int

	// FilesChanged is the number of files whose converted text differs from the source.
	FilesChanged int

	// FilesWritten is the number of output files written.
	FilesWritten int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithUnterminated is the number of files with at least one
	// unterminated construct.
	FilesWithUnterminated int

	// Unterminated is the total number of unterminated constructs.
	Unterminated int

	// ByTarget maps target names to the number of files converted into them.
	ByTarget map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be converted.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasWarnings reports whether any file contained unterminated constructs.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.Unterminated > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ByTarget: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesConverted++
	r.Stats.ByTarget[outcome.Target.String()]++

	if outcome.Result.Changed() {
		r.Stats.FilesChanged++
	}

	if outcome.Written {
		r.Stats.FilesWritten++
	}

	if n := len(outcome.Result.Diagnostics); n > 0 {
		r.Stats.FilesWithUnterminated++
		r.Stats.Unterminated += n
	}
}
