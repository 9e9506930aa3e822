// Package errors provides typed errors with exit codes for orgctl.
//
// # Error Types
//
// OrgError is the base error type that wraps an error with an exit code:
//
//	type OrgError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess        = 0   // Success
//	ExitGeneralError   = 1   // General/unknown errors
//	ExitOrgNotFound    = 2   // Stored org does not exist
//	ExitConfigError    = 3   // Configuration error
//	ExitDefinition     = 4   // Definition file error
//	ExitBrowser        = 5   // Browser launch failed
//	ExitAPIError       = 6   // Platform API failure
//	ExitRequestTimeout = 69  // Provisioning/readiness timeout (resumable)
//
// ExitRequestTimeout is deliberately distinct from the small sequential
// codes: callers script around it to detect the resumable-timeout case.
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.OrgNotFound("dev-scratch")
//	errors.ConfigError("failed to load config", err)
//	errors.RequestTimeout("org creation timed out", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
