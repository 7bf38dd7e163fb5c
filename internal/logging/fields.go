package logging

// Structured field names shared by every log call.
const (
	FieldError      = "error"
	FieldFile       = "file"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Per-conversion fields.
	FieldTarget = "target"
	FieldKind   = "kind"
	FieldLine   = "line"
	FieldColumn = "column"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Run totals.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesWritten    = "files_written"
	FieldFilesFailed     = "files_failed"
	FieldUnterminated    = "unterminated"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
