package cli

import (
	"errors"

	"github.com/yaklabco/qmdfmt/pkg/runner"
)

// Exit codes for qmdfmt.
const (
	// ExitSuccess indicates every file is already formatted or was written.
	ExitSuccess = 0

	// ExitFailure indicates unformatted files under --check, or any error.
	ExitFailure = 1
)

// ErrNotFormatted is returned by format --check when some file would be
// reformatted. It carries no message worth logging.
var ErrNotFormatted = errors.New("files are not formatted")

// ErrFormatFailed is returned when a file could not be read, formatted,
// verified or written.
var ErrFormatFailed = errors.New("formatting failed")

// ExitCodeFromResult determines the exit code of a run. Unformatted files
// only count when check is set.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitFailure
	}
	if check && result.HasChanges() {
		return ExitFailure
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
