package state

import "github.com/muurk/quickpanel/internal/sysexec"

// Tools lists the external binaries the provider invokes.
func Tools(opts Options) []sysexec.Tool {
	tools := []sysexec.Tool{
		{Name: "nmcli", Purpose: "network status, Wi-Fi and airplane mode"},
		{Name: "bluetoothctl", Purpose: "Bluetooth power and devices", Optional: true},
		{Name: "powerprofilesctl", Purpose: "power profiles", Optional: true},
		{Name: "gsettings", Purpose: "dark style", Optional: true},
		{Name: "pamixer", Purpose: "volume", Optional: true},
		{Name: "brightnessctl", Purpose: "brightness", Optional: true},
		{Name: "wl-paste", Purpose: "last picked color", Optional: true},
	}
	if opts.NightLightProcess != "" {
		tools = append(tools, sysexec.Tool{Name: opts.NightLightProcess, Purpose: "night light", Optional: true})
	}
	return tools
}
