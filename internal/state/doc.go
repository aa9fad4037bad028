// Package state reads and changes the host facilities the panel shows:
// network, Bluetooth, power profile, night light, theme, radios, audio
// volume, backlight, battery and the last picked color.
//
// Every query performs exactly one external lookup, bounded by the query
// timeout, and never fails: on any error (missing tool, non-zero exit,
// timeout, unparsable output) it logs and returns the documented default
// for its facility. Mutations are best-effort. They return an error for
// the caller to log or inspect, but the panel never surfaces it; the
// rebuild that follows shows the true state.
//
// Snapshot runs the queries needed for one rebuild concurrently and
// assembles them into a Snapshot value that is consumed once and dropped.
package state
