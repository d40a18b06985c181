package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the run completed and all outputs were written.
	ExitSuccess = 0

	// ExitFailure indicates a fetch failure or another critical error.
	// Output files written before the failure are not guaranteed consistent.
	ExitFailure = 2

	// ExitConfigError indicates a configuration error.
	// The run could not proceed; no network activity was performed.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	// Standard codes: 0=success, 2=failure, 3=config error.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// If err wraps a ConfigError, returns ExitConfigError.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// ConfigError represents a configuration problem: a malformed rule entry,
// an invalid regex pattern, a bad keep_latest_n value, or a schema error
// in the config document.
//
// Config errors are fatal and surface before any network activity.
//
// Fields:
//   - Field: Config location the error refers to, may be empty
//   - Message: Human-readable description of the problem
//   - Err: Underlying error (e.g. a regexp compile error), may be nil
type ConfigError struct {
	// Field names the config location the error refers to
	// (e.g. "repositories[0].filters[2]"). May be empty.
	Field string

	// Message describes the problem.
	Message string

	// Err is the underlying error, may be nil.
	Err error
}

// Error implements the error interface.
//
// Returns:
//   - string: formatted error message with field name if available
func (e *ConfigError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("config: %s: %s", e.Field, msg)
	}
	return fmt.Sprintf("config: %s", msg)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError for the given field with a formatted message.
//
// Parameters:
//   - field: Config location the error refers to, may be empty
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ConfigError: New config error
func NewConfigError(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsConfigError checks if err is (or wraps) a ConfigError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ConfigError: The ConfigError if err is one, nil otherwise
//   - bool: true if err is a ConfigError
func IsConfigError(err error) (*ConfigError, bool) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}

// FetchError represents a non-success HTTP response from the registry at
// any pagination step. Fetch errors are fatal; no retries are performed.
//
// Fields:
//   - StatusCode: HTTP status code of the failed response
//   - URL: The request URL that produced the response
type FetchError struct {
	// StatusCode is the HTTP status code of the failed response.
	StatusCode int

	// URL is the request URL that produced the response.
	URL string
}

// Error implements the error interface.
//
// Returns:
//   - string: formatted message with status code and URL
func (e *FetchError) Error() string {
	return fmt.Sprintf("registry fetch failed: HTTP %d for %s", e.StatusCode, e.URL)
}

// IsFetchError checks if err is (or wraps) a FetchError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *FetchError: The FetchError if err is one, nil otherwise
//   - bool: true if err is a FetchError
func IsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}
