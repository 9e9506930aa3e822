// Package logging provides logging utilities for orgctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating scratch org", "alias", alias, "devhub", devHub)
//	logging.Warn("domain not resolvable yet", "domain", domain, "attempt", n)
//
// The console handler is tint (colorized text); --json switches to the
// standard JSON handler.
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Requesting scratch org...")
//	logging.UserSuccess("Org %s created", username)
//	logging.UserWarning("Proceeding without domain verification")
//	logging.UserError("Creation failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
