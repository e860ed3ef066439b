package errors

import (
	stdErrors "errors"

	"git.home.luguber.info/inful/chainset/internal/hashset"
)

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ChainSetError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *ChainSetError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ChainSetError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Set operation errors

func InvalidArgument(message string, cause error) *ChainSetError {
	return Wrap(cause, CategoryArgument, SeverityError, message)
}

func SetNotFound(id string) *ChainSetError {
	return New(CategoryNotFound, SeverityWarning, "set not found").
		WithContext("set", id)
}

// Script errors

func ScriptFailed(step int, cause error) *ChainSetError {
	return Wrap(cause, CategoryScript, SeverityFatal, "script step failed").
		WithContext("step", step)
}

func ScriptInvalid(path string, cause error) *ChainSetError {
	return Wrap(cause, CategoryScript, SeverityFatal, "script invalid").
		WithContext("path", path)
}

// Filesystem and network errors

func FileError(operation, path string, cause error) *ChainSetError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "file operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func ListenError(addr string, cause error) *ChainSetError {
	return Wrap(cause, CategoryNetwork, SeverityFatal, "listener failed").
		WithContext("addr", addr)
}

// Internal errors

func InternalError(message string, cause error) *ChainSetError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

// FromSet classifies an error returned by the hashset package. Errors already
// classified pass through unchanged; nil stays nil.
func FromSet(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	switch {
	case stdErrors.Is(err, hashset.ErrInvalidConfig):
		return Wrap(err, CategoryConfig, SeverityFatal, "invalid set configuration")
	case stdErrors.Is(err, hashset.ErrInvalidElement):
		return Wrap(err, CategoryArgument, SeverityError, "invalid element")
	case stdErrors.Is(err, hashset.ErrInvalidArgument):
		return Wrap(err, CategoryArgument, SeverityError, "invalid argument")
	default:
		return InternalError("set operation failed", err)
	}
}
