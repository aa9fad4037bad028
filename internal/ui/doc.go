// Package ui renders the one-shot output of the quickpanel subcommands.
//
// Unlike the interactive panel, these components print once and exit.
// They are plain lipgloss renderers sized to the terminal.
//
// # Components
//
//   - Header: command banner with its parameters
//   - Result: success, failure or warning box with ordered details
//   - Checks: tool availability report used by "quickpanel doctor"
//   - Table: two-column key/value listing used by "quickpanel state"
//   - Confirm: yes/no prompt guarding overwrites
//
// # Logging Integration
//
// Logging is controlled by QUICKPANEL_LOG_LEVEL and goes to a file, so it
// never interleaves with this output.
package ui
