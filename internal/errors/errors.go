package errors

import (
	"errors"
	"fmt"
)

// Exit codes for orgctl
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitOrgNotFound  = 2
	ExitConfigError  = 3
	ExitDefinition   = 4
	ExitBrowser      = 5
	ExitAPIError     = 6

	// ExitRequestTimeout is the distinguished exit code for provisioning
	// or readiness timeouts. Scripts key off this value to decide whether
	// a resume is possible.
	ExitRequestTimeout = 69
)

// OrgError is the base error type for orgctl
type OrgError struct {
	Code    int
	Message string
	Cause   error
}

func (e *OrgError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *OrgError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *OrgError) ExitCode() int {
	return e.Code
}

// New creates a new OrgError
func New(code int, message string) *OrgError {
	return &OrgError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an OrgError
func Wrap(code int, message string, cause error) *OrgError {
	return &OrgError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// OrgNotFound returns an error for a missing stored org
func OrgNotFound(alias string) *OrgError {
	return New(ExitOrgNotFound, fmt.Sprintf("org not found: %s", alias))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *OrgError {
	return Wrap(ExitConfigError, message, cause)
}

// DefinitionError returns an error for definition file issues
func DefinitionError(message string, cause error) *OrgError {
	return Wrap(ExitDefinition, message, cause)
}

// BrowserError returns an error for browser launch failures
func BrowserError(message string, cause error) *OrgError {
	return Wrap(ExitBrowser, message, cause)
}

// APIError returns an error for platform API failures
func APIError(message string, cause error) *OrgError {
	return Wrap(ExitAPIError, message, cause)
}

// RequestTimeout returns the distinguished timeout error for a
// provisioning request that did not complete within its wait budget.
func RequestTimeout(message string, cause error) *OrgError {
	return Wrap(ExitRequestTimeout, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *OrgError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var orgErr *OrgError
	if errors.As(err, &orgErr) {
		return orgErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
