// Package tui provides terminal user interface components for orgctl.
//
// This package uses the Bubble Tea framework for live progress output
// during scratch org creation and domain readiness waits.
//
// # Progress view
//
// ProgressRenderer shows the staged creation lifecycle with a spinner on
// the stage currently in flight:
//
//	renderer := tui.NewRenderer(os.Stderr)
//	defer renderer.Close()
//	// hand to the orchestrator, which drives it frame by frame
//
// On a non-interactive stderr, NewRenderer falls back to plain line
// output so logs stay readable.
//
// # Waiting indicator
//
// WaitSpinner implements the readiness poller's Sink: a spinner that runs
// while a freshly provisioned domain is still propagating.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
