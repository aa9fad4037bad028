// Package logging provides structured logging for quickpanel.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used across the panel: external queries, dispatched
// actions and session lifecycle events.
//
// # Log Levels
//
//   - Debug: Query command lines, raw outputs, render timings
//   - Info: Session open/close, dispatched actions
//   - Warn: Failed queries that fell back to defaults, failed actions
//   - Error: Startup failures
//
// # Configuration
//
// Logging is silent by default. Set QUICKPANEL_LOG_LEVEL (or pass
// --log-level) to enable it:
//
//	if err := logging.Initialize("debug", ""); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Output
//
// The panel owns the terminal, so entries are written to a file rather than
// stdout. The default location is $XDG_STATE_HOME/quickpanel/quickpanel.log
// (falling back to $HOME/.local/state/quickpanel/quickpanel.log).
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Queries run in their
// own goroutines and log through the same global logger.
package logging
