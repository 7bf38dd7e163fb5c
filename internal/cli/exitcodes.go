package cli

import (
	"errors"

	"github.com/yaklabco/jiphy/pkg/runner"
)

// Exit codes for jiphy.
const (
	// ExitSuccess indicates every file converted.
	ExitSuccess = 0

	// ExitConversionFailed indicates at least one file could not be converted.
	ExitConversionFailed = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2
)

// ErrConversionFailed is returned when at least one file failed to convert.
var ErrConversionFailed = errors.New("conversion failed")

// ExitCodeFromResult determines the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitConversionFailed
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionFailed
	default:
		return ExitUsage
	}
}
