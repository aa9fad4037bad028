package sysexec

import (
	"fmt"
	"strings"
)

// ExecutionError represents a command that ran but exited unsuccessfully.
type ExecutionError struct {
	// Command is the command line that failed
	Command string
	// ExitCode is the process exit code (-1 if it could not be determined)
	ExitCode int
	// Stderr is the captured stderr output
	Stderr string
	// Underlying error if any
	Err error
}

func (e *ExecutionError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if e.Err != nil {
		return fmt.Sprintf("command %q failed (exit code %d): %v: %s", e.Command, e.ExitCode, e.Err, stderr)
	}
	return fmt.Sprintf("command %q failed (exit code %d): %s", e.Command, e.ExitCode, stderr)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError represents a command killed after exceeding its timeout.
type TimeoutError struct {
	// Command is the command line that timed out
	Command string
	// Timeout is the duration that was exceeded
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %s", e.Command, e.Timeout)
}

// NotFoundError represents a tool missing from PATH.
type NotFoundError struct {
	// Tool is the binary name that was looked up
	Tool string
	// Underlying error
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in PATH\n"+
		"Hint: install it or adjust the command in the quickpanel config",
		e.Tool)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}
