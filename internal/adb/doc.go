// Package adb runs the Android Debug Bridge executable and exposes the four
// calls the connector needs: listing mDNS services, listing sessions,
// connecting and disconnecting.
//
// # Architecture
//
// The package is split in two layers:
//
//   - Runner: runs one command and captures exit code, stdout and stderr.
//     ExecRunner implements it with os/exec; tests supply scripted fakes.
//   - Client: builds the adb argument lists on top of a Runner and turns
//     the captured output into values the rest of the program consumes.
//
// # Error Model
//
// A non-zero exit status is a normal outcome and is reported through
// Result.ExitCode or ConnectResult.Success. A Go error from Runner.Run
// means the process could not be run at all (binary missing, timeout,
// context cancelled) and is returned as an *ExecutionError or
// *TimeoutError.
//
// # Environment
//
// When Config.OpenScreen is set, every invocation carries
// ADB_MDNS_OPENSCREEN=1 so that adb uses its built-in Open Screen mDNS
// backend instead of relying on a system daemon.
//
// # Usage Example
//
//	runner := adb.NewExecRunner(adb.DefaultConfig(), logger)
//	client := adb.NewClient(runner, logger)
//
//	text, err := client.MDNSServices(ctx)
//	if err != nil {
//	    return err
//	}
package adb
