package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdcard/internal/configloader"
	"github.com/yaklabco/mdcard/pkg/runner"
)

// Exit codes for mdcard.
const (
	// ExitSuccess indicates every document rendered.
	ExitSuccess = 0

	// ExitRenderErrors indicates at least one document could not be rendered,
	// or that --check found stale output.
	ExitRenderErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a multi-file render.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() || result.HasStale() {
		return ExitRenderErrors
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var verr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRenderFailed), errors.Is(err, ErrStaleOutput):
		return ExitRenderErrors
	case errors.Is(err, ErrInteractiveStdin), errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &verr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitRenderErrors
	}
}
