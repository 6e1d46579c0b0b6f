// Package errors defines the coded errors taskloop returns.
//
// Every failure a user can act on carries a [Code]. Codes survive wrapping,
// so the CLI can pick an exit status with [GetCode] and print
// [UserMessage] without the code prefix:
//
//	err := errors.Wrap(errors.ErrCodeCycleDetected, scheduler.ErrCycleDetected, "3 of 4 tasks blocked")
//	errors.Is(err, errors.ErrCodeCycleDetected) // true
//	errors.UserMessage(err)                     // "3 of 4 tasks blocked: graph contains a cycle"
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Scheduling. Both are raised before any task runs.
	ErrCodeCycleDetected Code = "CYCLE_DETECTED"
	ErrCodeOutOfRange    Code = "OUT_OF_RANGE"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a code and message with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code. An outer
// INVALID_CONFIG around an inner INVALID_NAME matches both.
func Is(err error, code Code) bool {
	for e := range chain(err) {
		if e.Code == code {
			return true
		}
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	for e := range chain(err) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for a terminal: the messages of every *Error in
// the chain joined by ": ", followed by the first uncoded cause. Codes are
// left out.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var parts []string
	var last *Error
	for e := range chain(err) {
		if e.Message != "" {
			parts = append(parts, e.Message)
		}
		last = e
	}
	switch {
	case last == nil:
		return err.Error()
	case last.Cause != nil:
		parts = append(parts, last.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// chain yields each *Error reachable from err, outermost first.
func chain(err error) func(yield func(*Error) bool) {
	return func(yield func(*Error) bool) {
		for err != nil {
			var e *Error
			if !errors.As(err, &e) {
				return
			}
			if !yield(e) {
				return
			}
			err = e.Cause
		}
	}
}
