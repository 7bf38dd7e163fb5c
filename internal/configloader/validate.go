package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"

	"github.com/yaklabco/jiphy/pkg/config"
)

// ValidationError is one invalid setting.
type ValidationError struct {
	// Field is the YAML key, e.g. "ignore[2]".
	Field string

	Value any

	Message string

	// FilePath is the file the value came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := lo.Compact([]string{e.FilePath, e.Field, e.Message})
	return strings.Join(parts, ": ")
}

// ValidationResult collects the findings of Validate.
type ValidationResult struct {
	// Errors stop loading.
	Errors []ValidationError

	// Warnings are reported and loading continues.
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether there are warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins every error into one, or returns nil. Each joined error is a
// *ValidationError.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// AllMessages returns every finding prefixed with its severity.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownTargets    = []string{config.TargetPython, "python", config.TargetJavaScript, "javascript", config.TargetAuto}
	knownColorModes = []config.ColorMode{config.ColorAuto, config.ColorAlways, config.ColorNever}
)

// Validate checks every setting of cfg. Empty values are valid: they mean
// "inherit from the layer below".
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.Target != "" && !lo.Contains(knownTargets, strings.ToLower(cfg.Target)) {
		fail("target", cfg.Target, "invalid target %q; must be one of: py, js, auto", cfg.Target)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		fail("format", cfg.Format, "invalid format %q; must be one of: text, diff, json, summary", cfg.Format)
	}
	if cfg.Color != "" && !lo.Contains(knownColorModes, cfg.Color) {
		fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Jobs < 0 {
		fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	for _, ext := range []struct{ field, value string }{{"in_ext", cfg.InExt}, {"out_ext", cfg.OutExt}} {
		if strings.ContainsAny(ext.value, `/\`) {
			fail(ext.field, ext.value, "extension must not contain path separators")
		}
	}
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	if cfg.OutExt != "" && cfg.OutExt == cfg.InExt && cfg.OutDir == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "out_ext",
			Value:   cfg.OutExt,
			Message: fmt.Sprintf("out_ext %q equals in_ext; converted files will replace their sources", cfg.OutExt),
		})
	}

	return result
}

// ValidateWithFile validates cfg and records filePath on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
