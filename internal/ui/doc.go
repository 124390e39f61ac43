// Package ui renders the user-facing output of adb-autoconnect.
//
// Output is gated by a logging.Level chosen from the command-line flags:
//
//   - silent: nothing at all
//   - default: connection results and errors
//   - info: discovery progress, targets found, connect attempts
//   - verbose: everything, plus a run header and the "adb devices" listing
//
// The Reporter owns that gating and implements connect.Observer through
// AllObserver and FirstObserver, so the orchestrator never prints directly.
//
// Styling uses Lipgloss. Result boxes (success, failure, warning) carry
// ordered details and optional troubleshooting tips. RunWithSpinner wraps a
// blocking call in a small Bubble Tea program when stderr is a terminal.
//
// # Logging Integration
//
// Developer diagnostics are separate from this package and go through zap,
// enabled with the ADB_AUTOCONNECT_LOG_LEVEL environment variable. When it
// is unset, zap is silent and only the curated output here is shown.
package ui
