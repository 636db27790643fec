package cli

import (
	"errors"

	"github.com/yaklabco/mddecor/internal/configloader"
	"github.com/yaklabco/mddecor/pkg/fix"
	"github.com/yaklabco/mddecor/pkg/fsutil"
)

// Exit codes for mddecor.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a command that ran but did not complete, such as
	// a toggle refused because the file changed underneath it.
	ExitFailure = 1

	// ExitNotHandled indicates there was nothing at the given position to act on.
	ExitNotHandled = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNotHandled):
		return ExitNotHandled
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrUsage), errors.Is(err, errInvalidViewport):
		return ExitInvalidUsage
	case errors.Is(err, fix.ErrStale), errors.Is(err, fsutil.ErrModified):
		return ExitFailure
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, ErrFilesFailed):
		return ExitIOError
	default:
		return ExitFailure
	}
}
