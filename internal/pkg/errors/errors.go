// Package errors provides custom error types and error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
	CodeParse               = "PARSE_ERROR"
	CodeIO                  = "IO_ERROR"
	CodeScan                = "SCAN_ERROR"
	CodeRender              = "RENDER_ERROR"
	CodeInternal            = "INTERNAL_ERROR"
)

// AppError represents an application error with code and details.
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError.
func Wrap(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails adds details to the error.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Convenience constructors.

// ValidationError creates a validation error.
func ValidationError(message string) *AppError {
	return New(CodeValidation, message)
}

// UnsupportedLanguageError creates an error for a language with no strategy.
func UnsupportedLanguageError(language string) *AppError {
	return New(CodeUnsupportedLanguage, fmt.Sprintf("no strategy registered for language %q", language))
}

// ParseError creates a structural parse error.
func ParseError(message string, err error) *AppError {
	return Wrap(CodeParse, message, err)
}

// IOError creates a filesystem error.
func IOError(message string, err error) *AppError {
	return Wrap(CodeIO, message, err)
}

// ScanError creates a file discovery error.
func ScanError(message string, err error) *AppError {
	return Wrap(CodeScan, message, err)
}

// RenderError creates an output rendering error.
func RenderError(message string, err error) *AppError {
	return Wrap(CodeRender, message, err)
}

// InternalError creates an internal error.
func InternalError(message string, err error) *AppError {
	return Wrap(CodeInternal, message, err)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code == code {
			return true
		}
		return HasCode(appErr.Err, code)
	}
	return false
}

// IsUnsupportedLanguage checks if error is an unsupported language error.
func IsUnsupportedLanguage(err error) bool {
	return HasCode(err, CodeUnsupportedLanguage)
}

// IsParse checks if error is a parse error.
func IsParse(err error) bool {
	return HasCode(err, CodeParse)
}

// IsValidation checks if error is a validation error.
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}
