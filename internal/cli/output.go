package cli

import (
	"errors"
	"io"
	"log/slog"
)

// Process exit codes of the crystal command.
const (
	ExitSuccess      = 0
	ExitFailure      = 1   // image or manifest could not be written, replay diverged
	ExitCommandError = 2   // bad flags, config values or output path; nothing was computed
	ExitUnsaturated  = 3   // growth left empty cells, so no image was written
	ExitInterrupted  = 130 // cancelled by SIGINT
)

// ExitError carries the process exit code alongside the failure that caused it.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError reports a failure with no underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches code and a short description to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps the error returned by a command to the process exit code.
// nil is success; errors without an ExitError in their chain exit with
// ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	}
	return ExitFailure
}

// newLogger builds the text logger every command writes its progress to.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
