package mkdb

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := svc.CreateDatabase(ctx, mkdb.CreateOptions{})
//	if errors.Is(err, mkdb.ErrConfirmationDeclined) {
//	    // user said no; nothing happened
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDatabaseName indicates the requested name failed validation.
	ErrInvalidDatabaseName = errors.New("invalid database name")

	// ErrNoActiveConnection indicates neither an explicit nor an active connection exists.
	ErrNoActiveConnection = errors.New("no active connection")

	// ErrConfirmationDeclined indicates the user declined or dismissed the confirmation prompt.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrPromptCancelled indicates the user dismissed the database name prompt.
	ErrPromptCancelled = errors.New("prompt cancelled")

	// ErrConnectionFailed indicates the transport-level connection could not be established.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrExecutionFailed indicates the server rejected the statement or execution failed.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrUnsupportedProvider indicates no transport is registered for a provider kind.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedProvider),
		errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrConfirmationDeclined), errors.Is(err, ErrPromptCancelled):
		return ExitDeclined
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrNoActiveConnection):
		return ExitNoActiveConnection
	case errors.Is(err, ErrInvalidDatabaseName):
		return ExitInvalidName
	}

	errStr := err.Error()
	if isUsageError(errStr) {
		return ExitUsageError
	}
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

// isUsageError reports whether a cobra error message describes CLI misuse.
func isUsageError(msg string) bool {
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "accepts ", "required flag", "invalid argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
