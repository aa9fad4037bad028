// Package action defines the values attached to actionable panel nodes and
// the Executor that carries them out.
//
// Actions are plain data built by factory functions that take their target
// explicitly (a connection name, a device address, a command line), so a
// handler never captures state from the loop that rendered it. The Executor
// maps each action to at most one mutation and returns an Outcome telling
// the panel whether to close, rebuild, or collapse sections. Failures are
// logged and never returned.
package action
