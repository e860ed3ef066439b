package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if cse, ok := As(err); ok {
		return a.exitCodeFromChainSet(cse)
	}

	return 1
}

// exitCodeFromChainSet maps ChainSetError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromChainSet(err *ChainSetError) int {
	switch err.Category {
	case CategoryValidation, CategoryArgument:
		return 2 // Invalid usage
	case CategoryScript:
		return 3 // Script failed
	case CategoryNotFound:
		return 4
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryNetwork, CategoryFileSystem:
		return 8 // External system error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if cse, ok := As(err); ok {
		return a.formatChainSet(cse)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatChainSet formats a ChainSetError for display.
func (a *CLIErrorAdapter) formatChainSet(err *ChainSetError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation, CategoryArgument:
		if err.Cause != nil {
			return fmt.Sprintf("%s: %v", err.Message, err.Cause)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(a.out, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if cse, ok := As(err); ok {
		return cse.Category == CategoryInternal ||
			cse.Category == CategoryRuntime ||
			cse.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if cse, ok := As(err); ok {
		level := a.slogLevelFromSeverity(cse.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(cse.Category)),
		}
		for k, v := range cse.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if cse.Cause != nil {
			attrs = append(attrs, slog.String("error", cse.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, cse.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts ChainSetError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
