// Adb-autoconnect finds Android devices advertising wireless debugging on
// the local network and connects adb to them.
//
// On every run it first disconnects stale wireless sessions (offline or
// unauthorized), then repeats mDNS discovery until a target shows up or the
// timeout passes, and finally connects to the first working target, or to
// all of them with --all. Each connect is verified against "adb devices".
//
// Prerequisites:
//
//   - adb (Android SDK Platform-Tools) installed and in PATH, or --adb
//   - Wireless debugging enabled on the device and the device paired once
//
// Usage:
//
//	adb-autoconnect [flags]
//	adb-autoconnect [command]
//
// Exit status is 0 when a device was connected (or --list found targets)
// and 1 when nothing was discovered or nothing could be connected.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/adb-autoconnect/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// exitError ends the process with code. The failure it wraps has already
// been reported to the user, so main prints nothing more.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "adb-autoconnect",
	Short: "Discover and connect to wireless ADB devices",
	Long: `Discover Android devices with wireless debugging enabled and connect adb to them.

Stale wireless sessions (offline or unauthorized) are disconnected first.
Discovery then polls "adb mdns services" until at least one target appears
or the timeout passes. Targets are ranked so that the most recently
advertised service is tried first, and every connect is verified.

Set ADB_AUTOCONNECT_LOG_LEVEL=debug to see diagnostic logs.`,
	Version: version.Full(),
	Example: `  # Connect to the first working device
  adb-autoconnect

  # Wait up to 20 seconds for a device to appear
  adb-autoconnect --timeout 20000

  # Only list discovered targets
  adb-autoconnect --list

  # Connect to every discovered target and show details
  adb-autoconnect --all --verbose`,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runConnect,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}
