package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/plugmod/internal/configloader"
	"github.com/yaklabco/plugmod/pkg/fsutil"
	"github.com/yaklabco/plugmod/pkg/mods"
	"github.com/yaklabco/plugmod/pkg/plugins"
)

// Exit codes for plugmod.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChangesPending indicates apply --check found files that would change.
	ExitChangesPending = 1

	// ExitModFailed indicates a mod failed and its platform was reverted.
	ExitModFailed = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrChangesPending is returned by apply --check when native files are out of date.
var ErrChangesPending = errors.New("native files are out of date")

// UsageError wraps invalid command-line usage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var (
		usageErr      *UsageError
		validationErr *configloader.ValidationError
		modErr        *mods.ModError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesPending):
		return ExitChangesPending
	case errors.As(err, &usageErr):
		return ExitInvalidUsage
	case errors.As(err, &validationErr),
		errors.Is(err, plugins.ErrUnknownPlugin),
		errors.Is(err, mods.ErrUnknownMod):
		return ExitConfigError
	case errors.Is(err, mods.ErrConcurrentModification),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	case errors.As(err, &modErr):
		return ExitModFailed
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrExist):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
