package action

import "fmt"

// Kind identifies what an action does.
type Kind string

const (
	KindNone    Kind = ""
	KindExpand  Kind = "expand"
	KindRefresh Kind = "refresh"

	// Launchers run detached and close the panel.
	KindLaunch Kind = "launch"
	// Shell commands block and trigger a rebuild.
	KindShell Kind = "shell"

	KindWiFiRadio      Kind = "wifi-radio"
	KindBluetoothPower Kind = "bluetooth-power"
	KindAirplaneMode   Kind = "airplane-mode"
	KindNightLight     Kind = "night-light"
	KindDarkStyle      Kind = "dark-style"

	KindPowerProfile        Kind = "power-profile"
	KindConnectWiFi         Kind = "connect-wifi"
	KindConnectionUp        Kind = "connection-up"
	KindDisconnectNetwork   Kind = "disconnect-network"
	KindConnectBluetooth    Kind = "connect-bluetooth"
	KindDisconnectBluetooth Kind = "disconnect-bluetooth"

	KindVolume     Kind = "volume"
	KindBrightness Kind = "brightness"
)

// Action is one user-triggerable operation.
type Action struct {
	Kind Kind
	// Target is the identifier acted on: a command line, connection name,
	// SSID, device address, profile name or module id.
	Target string
	// Module is the section that rendered the action, if any.
	Module string
	On     bool
	Level  int
}

// None is the zero action.
func None() Action { return Action{} }

// Launch starts command detached and closes the panel.
func Launch(command string) Action {
	return Action{Kind: KindLaunch, Target: command}
}

// Shell runs command to completion and rebuilds the panel.
func Shell(command string) Action {
	return Action{Kind: KindShell, Target: command}
}

// Expand toggles the section of module id.
func Expand(id string) Action {
	return Action{Kind: KindExpand, Target: id, Module: id}
}

// Refresh rebuilds the panel without changing anything.
func Refresh() Action {
	return Action{Kind: KindRefresh}
}

// Switch sets an on/off facility to on.
func Switch(kind Kind, on bool) Action {
	return Action{Kind: kind, On: on}
}

// Target applies kind to an identified item inside module's section.
func Target(kind Kind, module, target string) Action {
	return Action{Kind: kind, Module: module, Target: target}
}

// Level sets a percentage facility.
func Level(kind Kind, percent int) Action {
	return Action{Kind: kind, Level: percent}
}

// IsNone reports whether the action does nothing.
func (a Action) IsNone() bool {
	return a.Kind == KindNone
}

func (a Action) String() string {
	switch {
	case a.Kind == KindNone:
		return "none"
	case a.Target != "":
		return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
	case a.Kind == KindVolume || a.Kind == KindBrightness:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Level)
	default:
		return fmt.Sprintf("%s(%t)", a.Kind, a.On)
	}
}

// Outcome tells the panel what to do once an action has run.
type Outcome struct {
	Close       bool
	Rebuild     bool
	CollapseAll bool
	// Collapse names a single section to close.
	Collapse string
}

func (o Outcome) String() string {
	switch {
	case o.Close:
		return "close"
	case o.Rebuild:
		return "rebuild"
	default:
		return "none"
	}
}
