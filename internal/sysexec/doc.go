// Package sysexec runs the external tools quickpanel reads state from and
// acts through.
//
// Two modes are supported. Run executes a command synchronously, bounded by
// a timeout, and captures its output. Start launches a shell command line
// detached from the panel so that it outlives the session (lock screens,
// pickers, settings apps).
//
// Failures are reported as typed errors (*ExecutionError, *TimeoutError,
// *NotFoundError) so callers can decide on fallbacks with errors.As. The
// package never interprets command output.
package sysexec
