// Package strataerrors provides structured error handling for strata with
// error categorization, key-value details and captured stack traces.
//
// # Overview
//
// Errors only appear at the edges of the comparison layer: column
// construction, checked accessors, configuration and the CLI. The comparison
// hot path has no error channel; internal invariant violations inside it are
// raised with Invariant, which panics with a typed *Error.
//
// # Basic Usage
//
//	err := strataerrors.New(strataerrors.ErrorTypeValidation, "validity length mismatch").
//	    WithDetail("values", len(values)).
//	    WithDetail("validity", validity.Len())
//
//	if err := viper.ReadInConfig(); err != nil {
//	    return strataerrors.Wrap(err, strataerrors.ErrorTypeConfig, "failed to read config")
//	}
//
// # Thread Safety
//
// Error instances are not thread-safe for modification. Finish adding
// details before sharing an error across goroutines.
package strataerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error.
type ErrorType string

const (
	// ErrorTypeInternal represents violated internal invariants
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents invalid arguments
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeOutOfRange represents a position outside a column
	ErrorTypeOutOfRange ErrorType = "out_of_range"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeData represents malformed column data
	ErrorTypeData ErrorType = "data"
	// ErrorTypeCapability represents unsupported column types
	ErrorTypeCapability ErrorType = "capability"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
)

// Error represents a structured error with context.
//
// Fields:
//   - Type: Categorizes the error
//   - Message: Human-readable error description
//   - Cause: The underlying error, if any
//   - Details: Key-value pairs providing additional context
//   - Stack: Call stack at the point of creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error. Calls can be chained.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, capturing the
// call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf is New with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error, preserving it as the cause. If err is
// already an *Error its stack is kept. Returns nil for a nil err.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
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

// Invariant panics with an internal *Error. It is reserved for states that
// the surrounding system guarantees cannot happen, where returning a value
// would silently corrupt a result.
func Invariant(message string, details ...interface{}) {
	e := &Error{
		Type:    ErrorTypeInternal,
		Message: message,
		Stack:   captureStack(2),
	}
	for i := 0; i+1 < len(details); i += 2 {
		key, ok := details[i].(string)
		if !ok {
			key = fmt.Sprint(details[i])
		}
		e.WithDetail(key, details[i+1])
	}
	panic(e)
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
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
