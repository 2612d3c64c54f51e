package cli

import (
	"errors"
	"fmt"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
)

// Exit codes for dunesync.
const (
	ExitSuccess = 0 // Completed, including runs with nothing to do
	ExitFailure = 1 // Sync failed (remote, file or manifest errors)
	ExitUsage   = 2 // Bad flags, missing API key or unreadable settings
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// A missing API key is a usage error; anything else without an explicit
// code is ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, domain.ErrMissingAPIKey) {
		return ExitUsage
	}
	return ExitFailure
}
