// Package errors provides the error taxonomy for histclean.
//
// Three classes of failure abort a run, and all of them are reported
// before the history file is overwritten:
//
//   - ErrEncoding - the history file is not valid UTF-8
//   - ErrConfiguration - an invalid option or option combination
//   - ErrIO - a read, write or backup failure
//
// ErrCanceled marks a run the user declined at the confirmation prompt.
//
// Wrapped error types add context and unwrap to the matching sentinel:
//   - EncodingError{Line, Err}
//   - ConfigError{Path, Err}
//   - IOError{Op, Path, Err}
//
// # Usage
//
//	return &errors.IOError{Op: "backup", Path: dst, Err: err}
//
//	if errors.IsConfiguration(err) {
//	    os.Exit(2)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrEncoding indicates the input is not valid UTF-8.
	ErrEncoding = baseError("invalid encoding")

	// ErrConfiguration indicates an invalid option or option combination.
	ErrConfiguration = baseError("invalid configuration")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// EncodingError reports the first line of a history file that is not valid UTF-8.
type EncodingError struct {
	// Line is the 1-based line number of the first invalid byte.
	Line int
	// Err is the underlying error (optional).
	Err error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %s", e.Line, ErrEncoding, e.Err)
	}
	return fmt.Sprintf("line %d: %s: not valid UTF-8", e.Line, ErrEncoding)
}

// Unwrap always yields ErrEncoding so errors.Is works without a cause.
func (e *EncodingError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrEncoding, e.Err}
	}
	return []error{ErrEncoding}
}

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path or the offending option (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() []error { return []error{ErrConfiguration, e.Err} }

// IOError represents a failed file operation.
type IOError struct {
	// Op is the operation being performed (e.g., "read", "write", "backup").
	Op string
	// Path is the file the operation was applied to.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// Invalidf returns a ConfigError for an invalid option value.
func Invalidf(option, format string, args ...any) error {
	return &ConfigError{Path: option, Err: fmt.Errorf(format, args...)}
}

// IsConfiguration reports whether err is or wraps ErrConfiguration.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
