// Package errors provides a small structured error type so the driver's
// single top-level handler can map a failure to an exit code without
// string-matching messages. Every failure in this system is fatal (see
// spec.md §7) — this package exists to make that one print-and-exit path
// structured, not to introduce recovery.
package errors

import "fmt"

// AppError carries a stable code alongside the human-readable message.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError with no wrapped cause.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches additional context to err, preserving its code if it is
// already an AppError, otherwise tagging it CodeInternal.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode returns err re-tagged with code, preserving its message/cause.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: code, Message: appErr.Message, Cause: appErr.Cause}
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

// Code returns the error's code, or CodeUnknown if err is not an AppError.
func Code(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeUnknown
}

// Error codes, one per §7 failure category plus a fallback.
const (
	CodeConfigInvalid = "CONFIG_INVALID" // bad arity, unreadable spec, unknown keyword
	CodeParamInvalid  = "PARAM_INVALID"  // parameter out of validated range, degenerate prior
	CodeSolverError   = "SOLVER_ERROR"   // abnormal termination, non-success exit, missing output
	CodeHostError     = "HOST_ERROR"     // unable to acquire requested parallelism
	CodeInternal      = "INTERNAL_ERROR"
	CodeUnknown       = "UNKNOWN"
)

// ExitCode maps an error's code to a process exit status. All non-nil
// errors are fatal (§7); the mapping only distinguishes the category for
// anyone inspecting logs, every branch below exits non-zero.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch Code(err) {
	case CodeConfigInvalid:
		return 2
	case CodeParamInvalid:
		return 3
	case CodeSolverError:
		return 4
	case CodeHostError:
		return 5
	default:
		return 1
	}
}
