// Package config defines core configuration types for jiphy.
// These types are pure data structures with no dependency on how they are loaded.
package config

import "github.com/samber/lo"

// Target names accepted by the target setting.
const (
	TargetPython     = "py"
	TargetJavaScript = "js"
	TargetAuto       = "auto"
)

// DefaultInExt is the extension of source files picked up when walking directories.
const DefaultInExt = "jiphy"

// OutputFormat specifies how conversion results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatDiff    OutputFormat = "diff"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists every output format.
//
//nolint:gochecknoglobals // Read-only list.
var OutputFormats = []OutputFormat{FormatText, FormatDiff, FormatJSON, FormatSummary}

// IsValid reports whether f names a known output format.
func (f OutputFormat) IsValid() bool {
	return lo.Contains(OutputFormats, f)
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// BackupsConfig controls backup behavior when output files are replaced.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the root configuration structure for jiphy.
type Config struct {
	// Target is the syntax to convert into: py, js or auto.
	Target string `yaml:"target"`

	// OutExt overrides the output file extension. Empty means the
	// target's own extension.
	OutExt string `yaml:"out_ext,omitempty"`

	// InExt is the extension of source files found when walking directories.
	InExt string `yaml:"in_ext"`

	// OutDir places output files in one directory instead of next to
	// their sources.
	OutDir string `yaml:"out_dir,omitempty"`

	// Recursive walks directory arguments into subdirectories.
	Recursive bool `yaml:"recursive"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// KeepTrailingWhitespace disables stripping trailing whitespace from
	// every output line.
	KeepTrailingWhitespace bool `yaml:"keep_trailing_whitespace"`

	// Backups configures sidecar backups of replaced output files.
	Backups BackupsConfig `yaml:"backups"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"format"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// Color controls styled output.
	Color ColorMode `yaml:"color"`

	// CLI-level options (not persisted to config files).

	// Diff prints unified diffs instead of writing output files.
	Diff bool `yaml:"-"`

	// DryRun converts without writing output files.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Target: TargetJavaScript,
		InExt:  DefaultInExt,
		Format: FormatText,
		Color:  ColorAuto,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
