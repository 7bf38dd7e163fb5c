package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/jiphy/pkg/config"
)

// bufWriterSize sizes the buffered writer every reporter flushes on return.
const bufWriterSize = 64 << 10

// Options configures a Reporter.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is auto, always or never.
	Color string

	// ShowContext prints the source line and a caret under each
	// unterminated construct.
	ShowContext bool

	// ShowSummary ends the report with run totals.
	ShowSummary bool

	// Compact writes json on a single line.
	Compact bool

	// DryRun reports converted files as pending instead of unchanged.
	DryRun bool

	// WorkingDir shortens paths beneath it to relative ones. Empty keeps
	// paths as given.
	WorkingDir string
}

// DefaultOptions reports text to stdout with context and a summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       string(config.ColorAuto),
		ShowContext: true,
		ShowSummary: true,
	}
}

func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
