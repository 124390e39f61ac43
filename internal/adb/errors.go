package adb

import (
	"fmt"
	"strings"
)

// ExecutionError represents a failure to run the adb executable.
// A non-zero exit code alone is not an ExecutionError.
type ExecutionError struct {
	// Args is the adb argument list that was attempted
	Args []string
	// ExitCode is the process exit code, or -1 if it never started
	ExitCode int
	// Stderr is whatever adb wrote before failing
	Stderr string
	// Underlying error
	Err error
}

func (e *ExecutionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("adb %s failed (exit code %d): %v\nstderr: %s",
			strings.Join(e.Args, " "), e.ExitCode, e.Err, e.Stderr)
	}
	return fmt.Sprintf("adb %s failed (exit code %d): %v",
		strings.Join(e.Args, " "), e.ExitCode, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError represents an adb invocation that exceeded Config.Timeout.
type TimeoutError struct {
	// Args is the adb argument list that timed out
	Args []string
	// Timeout is the duration that was exceeded
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("adb %s timed out after %s\n"+
		"Hint: check that the adb server is responsive (adb kill-server && adb start-server)",
		strings.Join(e.Args, " "), e.Timeout)
}

// PrerequisiteError represents a missing or unusable adb executable.
type PrerequisiteError struct {
	// Prerequisite is the name of the missing prerequisite
	Prerequisite string
	// Details provides additional context
	Details string
	// Underlying error
	Err error
}

func (e *PrerequisiteError) Error() string {
	msg := fmt.Sprintf("missing prerequisite: %s", e.Prerequisite)
	if e.Details != "" {
		msg += "\n" + e.Details
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\nError: %v", e.Err)
	}
	return msg
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}
