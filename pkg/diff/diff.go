// Package diff renders unified diffs between a source file and its
// converted text.
package diff

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Label suffixes for the two sides of a diff.
const (
	BeforeSuffix = ":before"
	AfterSuffix  = ":after"
)

// Diff is a unified diff between the original and converted content of one file.
type Diff struct {
	// Path is the source file path the diff labels are derived from.
	Path string

	// Unified holds the computed hunks.
	Unified gotextdiff.Unified

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Generate creates a unified diff labeled "<path>:before" and "<path>:after".
// Returns nil if the contents are identical.
func Generate(path string, before, after []byte) *Diff {
	if string(before) == string(after) {
		return nil
	}

	from, to := path+BeforeSuffix, path+AfterSuffix
	edits := myers.ComputeEdits(span.URIFromPath(from), string(before), string(after))
	unified := gotextdiff.ToUnified(from, to, string(before), edits)
	if len(unified.Hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Unified: unified}
	for _, hunk := range unified.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case gotextdiff.Insert:
				d.Additions++
			case gotextdiff.Delete:
				d.Deletions++
			case gotextdiff.Equal:
			}
		}
	}
	return d
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Unified.Hunks) > 0
}

// String returns the diff in unified format.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Labeled(d.Path)
}

// Labeled returns the unified diff with headers naming label instead of
// Path, e.g. a path relative to the working directory.
func (d *Diff) Labeled(label string) string {
	if !d.HasChanges() {
		return ""
	}
	unified := d.Unified
	unified.From, unified.To = label+BeforeSuffix, label+AfterSuffix

	out := fmt.Sprint(unified)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}
