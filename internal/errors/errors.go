// Package errors provides a lightweight structured error type (ChainSetError)
// for category-based classification in the HTTP API and CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a ChainSetError for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryArgument   ErrorCategory = "argument"
	CategoryScript     ErrorCategory = "script"

	// External system errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryNetwork    ErrorCategory = "network"

	// Runtime and infrastructure errors
	CategoryNotFound ErrorCategory = "not_found"
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ChainSetError is a structured error with category, severity and context
type ChainSetError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ChainSetError
type ContextFields map[string]any

// Error implements the error interface
func (e *ChainSetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ChainSetError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ChainSetError) WithContext(key string, value any) *ChainSetError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ChainSetError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ChainSetError {
	return &ChainSetError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ChainSetError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ChainSetError {
	return &ChainSetError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the first ChainSetError in err's chain.
func As(err error) (*ChainSetError, bool) {
	var cse *ChainSetError
	if stdErrors.As(err, &cse) {
		return cse, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if cse, ok := As(err); ok {
		return cse.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a ChainSetError
func GetCategory(err error) ErrorCategory {
	if cse, ok := As(err); ok {
		return cse.Category
	}
	return CategoryInternal
}
