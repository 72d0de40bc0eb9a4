package errors

import (
	"fmt"
)

// AppError represents a structured application error
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes for the analysis pipeline. Input and output errors are fatal
// at the pipeline boundary; degenerate-group errors become NA result rows.
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInputError      = "INPUT_ERROR"
	CodeDegenerateGroup = "DEGENERATE_GROUP"
	CodeOutputError     = "OUTPUT_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InputError(message string) *AppError {
	return New(CodeInputError, message)
}

func InputErrorf(format string, args ...interface{}) *AppError {
	return New(CodeInputError, fmt.Sprintf(format, args...))
}

// InputFailure wraps a read or parse failure as an input error.
func InputFailure(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeInputError,
		Message: message,
		Cause:   cause,
	}
}

func DegenerateGroup(group string, reason string) *AppError {
	return New(CodeDegenerateGroup, fmt.Sprintf("group %s: %s", group, reason))
}

func OutputError(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeOutputError,
		Message: fmt.Sprintf("failed to write %s", path),
		Cause:   cause,
	}
}

// IsDegenerate reports whether err marks a group too small or too uniform
// for a statistic; callers convert these to NA rows instead of aborting.
func IsDegenerate(err error) bool {
	return GetCode(err) == CodeDegenerateGroup
}
