// Package panel is the interactive quick settings panel.
//
// The panel is a Bubble Tea program running on the alternate screen. The
// whole screen acts as the capture overlay: the panel box is drawn at one
// anchored edge, clicks outside it and Escape end the session through an
// overlay.Controller, and clicks inside it are routed to the node under
// the pointer with bubblezone.
//
// # Event flow
//
// Update is the only place session state changes. Every state-affecting
// event (opening the panel, toggling a section, an action finishing, an
// explicit refresh) starts a snapshot query in a tea.Cmd stamped with a
// new generation number. Only the snapshot carrying the latest generation
// is rendered; slower, older results are dropped. Actions run one at a
// time in a tea.Cmd and queue behind each other; consecutive slider moves
// collapse into the latest value.
//
// Dismissal cancels the session context, so queries and actions still in
// flight are abandoned and their results never applied. There is no
// periodic refresh.
package panel
