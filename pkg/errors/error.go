// Package errors carries the tradelog failure taxonomy as coded errors.
//
// Codes are grouped by hundreds (see Category):
//   - 1-99 general
//   - 100-199 validation: parameters, configuration, time input, timezones
//   - 200-299 journal: appending to or rotating a dated log file
//   - 300-399 notification: failed or timed out sends
//   - 400-499 trading: for futures API implementations; the instrumented
//     proxy never wraps the API's own errors
//   - 500-599 persistence: local state files such as the exclusion registry
//
// Usage:
//
//	err := errors.Wrapf(errors.ErrCodeLogWriteFailure, cause, "failed to append to %s", path)
//
//	if errors.HasCode(err, errors.ErrCodeLogWriteFailure) { ... }
//	os.Exit(errors.ExitCode(err))
package errors

import (
	"errors"
	"fmt"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error without a cause.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Cause: nil}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error renders "[<number> <name>] <message>[: <cause>]".
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d %s] %s: %v", e.Code, e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d %s] %s", e.Code, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost *Error in err's chain, or
// ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// Codes lists the codes of every *Error in err's chain, outermost first.
func Codes(err error) []ErrorCode {
	var codes []ErrorCode

	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}

		codes = append(codes, e.Code)
		err = e.Cause
	}

	return codes
}

// HasCode reports whether any *Error in err's chain carries code, so a
// configuration error that wraps a timezone error has both codes.
func HasCode(err error, code ErrorCode) bool {
	for _, c := range Codes(err) {
		if c == code {
			return true
		}
	}

	return false
}

// ExitCode maps err to a process exit status by the category of its outermost
// code: 0 for nil, 2 validation, 3 journal, 4 notification, 5 trading,
// 6 persistence and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var e *Error
	if !errors.As(err, &e) {
		return 1
	}

	switch e.Code.Category() {
	case CategoryValidation:
		return 2
	case CategoryJournal:
		return 3
	case CategoryNotification:
		return 4
	case CategoryTrading:
		return 5
	case CategoryPersistence:
		return 6
	default:
		return 1
	}
}
