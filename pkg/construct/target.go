package construct

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTarget is returned by ParseTarget for unrecognized names.
var ErrUnknownTarget = errors.New("unknown target")

// Target is one of the two surface syntaxes a tree renders into.
type Target uint8

// Supported targets. Both marks spellings shared by the two syntaxes and is
// never a rendering target itself.
const (
	Python Target = iota
	JavaScript
	Both
)

// Targets lists the rendering targets.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Targets = [...]Target{Python, JavaScript}

// String returns the short name used on the command line.
func (t Target) String() string {
	switch t {
	case Python:
		return "py"
	case JavaScript:
		return "js"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Target(%d)", uint8(t))
	}
}

// Name returns the human readable language name.
func (t Target) Name() string {
	switch t {
	case Python:
		return "Python"
	case JavaScript:
		return "JavaScript"
	default:
		return t.String()
	}
}

// Extension returns the conventional file extension without the dot.
func (t Target) Extension() string {
	return t.String()
}

// Other returns the opposite target.
func (t Target) Other() Target {
	if t == Python {
		return JavaScript
	}
	return Python
}

// ParseTarget accepts "py", "python", "js" or "javascript" in any case.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "py", "python":
		return Python, nil
	case "js", "javascript":
		return JavaScript, nil
	default:
		return 0, fmt.Errorf("%w %q; valid targets: py, js", ErrUnknownTarget, name)
	}
}
