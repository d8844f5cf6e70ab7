// Package errors provides structured error handling for Tessera.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error.
type ErrorType string

const (
	// ErrorTypeConfiguration represents configuration resolution errors.
	// These are fatal to table activation and carry a Code.
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeValidation represents malformed input errors (parse failures,
	// bad option shapes) detected before resolution.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeData represents dataset loading errors.
	ErrorTypeData ErrorType = "data"
	// ErrorTypeIO represents file and network source errors.
	ErrorTypeIO ErrorType = "io"
	// ErrorTypeInternal represents internal engine errors.
	ErrorTypeInternal ErrorType = "internal"
)

// Code identifies a specific configuration failure. Codes exist only for
// ErrorTypeConfiguration: a failed resolution must be distinguishable by the
// caller without string matching.
type Code string

const (
	// CodeUnknownTable - the requested table name is not present in the
	// data-type configuration.
	CodeUnknownTable Code = "unknown_table"
	// CodeDanglingCategoryReference - a column references a category id that
	// is absent from the shared category list.
	CodeDanglingCategoryReference Code = "dangling_category_reference"
	// CodeDuplicateColumn - two columns within one table share a key.
	CodeDuplicateColumn Code = "duplicate_column"
)

// Error represents a structured error with context.
type Error struct {
	Type    ErrorType
	Code    Code
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Code != "" && e.Cause != nil:
		return fmt.Sprintf("%s (%s): %s: %v", e.Type, e.Code, e.Message, e.Cause)
	case e.Code != "":
		return fmt.Sprintf("%s (%s): %s", e.Type, e.Code, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// NewConfiguration creates a configuration error carrying a Code.
func NewConfiguration(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Type:    ErrorTypeConfiguration,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the code and stack
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Type:    errType,
			Code:    existing.Code,
			Message: message,
			Cause:   err,
			Stack:   existing.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// IsConfiguration reports whether err is a configuration error, optionally
// matching a specific code. With no codes it matches any configuration error.
func IsConfiguration(err error, codes ...Code) bool {
	var e *Error
	if !errors.As(err, &e) || e.Type != ErrorTypeConfiguration {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, c := range codes {
		if e.Code == c {
			return true
		}
	}
	return false
}

// CodeOf returns the configuration code of err, or the empty Code when err is
// not a structured configuration error.
func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// captureStack captures the current call stack.
func captureStack(skip int) []StackFrame {
	const maxFrames = 16
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
