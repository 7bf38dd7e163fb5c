package reporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/jiphy/pkg/config"
)

// Format selects a reporter. It shares its values with the format setting.
type Format = config.OutputFormat

// Output formats.
const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat parses a --format value, case-insensitively. Empty means text.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() {
		valid := lo.Map(config.OutputFormats, func(f config.OutputFormat, _ int) string { return string(f) })
		return "", fmt.Errorf("%w %q; valid formats: %s", ErrUnknownFormat, name, strings.Join(valid, ", "))
	}
	return format, nil
}
