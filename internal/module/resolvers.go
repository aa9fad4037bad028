package module

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/state"
)

// Resolvers is the capability set descriptors refer to by name.
type Resolvers struct {
	Text  map[string]func(state.Snapshot) string
	Flag  map[string]func(state.Snapshot) bool
	List  map[string]func(state.Snapshot) []Item
	Level map[string]func(state.Snapshot) int
}

// Resolver names used by the built-in registry.
const (
	NetworkIcon      = "network.icon"
	NetworkName      = "network.name"
	NetworkConnected = "network.connected"
	NetworkRadio     = "network.radio"
	NetworkList      = "network.list"

	BluetoothIcon    = "bluetooth.icon"
	BluetoothStatus  = "bluetooth.status"
	BluetoothPowered = "bluetooth.powered"
	BluetoothList    = "bluetooth.list"

	PowerIcon    = "power.icon"
	PowerProfile = "power.profile"
	PowerSaving  = "power.saving"
	PowerList    = "power.list"

	NightLightStatus  = "nightlight.status"
	NightLightRunning = "nightlight.running"
	DarkStyleStatus   = "darkstyle.status"
	DarkStyleEnabled  = "darkstyle.enabled"
	AirplaneStatus    = "airplane.status"
	AirplaneEnabled   = "airplane.enabled"

	BatteryText     = "battery.text"
	ColorValue      = "color.value"
	VolumeLevel     = "volume.level"
	BrightnessLevel = "brightness.level"
)

// Glyphs used by resolvers
const (
	iconBluetoothOn        = "󰂯"
	iconBluetoothOff       = "󰂲"
	iconBluetoothConnected = "󰂱"
	iconPerformance        = "󰓅"
	iconBalanced           = "󰾅"
	iconPowerSaver         = "󰾆"
	iconCheck              = "󰄬"
)

// DefaultResolvers returns the resolvers backing the built-in registry.
func DefaultResolvers() Resolvers {
	return Resolvers{
		Text: map[string]func(state.Snapshot) string{
			NetworkIcon: func(s state.Snapshot) string { return s.Network.Icon },
			NetworkName: func(s state.Snapshot) string { return s.Network.Name },
			BluetoothIcon: func(s state.Snapshot) string {
				if !s.BluetoothPowered {
					return iconBluetoothOff
				}
				if connectedDevice(s) != "" {
					return iconBluetoothConnected
				}
				return iconBluetoothOn
			},
			BluetoothStatus: func(s state.Snapshot) string {
				if !s.BluetoothPowered {
					return "Off"
				}
				if name := connectedDevice(s); name != "" {
					return name
				}
				return "On"
			},
			PowerIcon:        func(s state.Snapshot) string { return profileIcon(s.PowerProfile) },
			PowerProfile:     func(s state.Snapshot) string { return profileTitle(s.PowerProfile) },
			NightLightStatus: func(s state.Snapshot) string { return onOff(s.NightLight) },
			DarkStyleStatus:  func(s state.Snapshot) string { return onOff(s.DarkStyle) },
			AirplaneStatus:   func(s state.Snapshot) string { return onOff(s.AirplaneMode) },
			BatteryText:      func(s state.Snapshot) string { return fmt.Sprintf("%s %d%%", batteryIcon(s.Battery), s.Battery) },
			ColorValue:       func(s state.Snapshot) string { return s.LastColor },
		},
		Flag: map[string]func(state.Snapshot) bool{
			NetworkConnected:  func(s state.Snapshot) bool { return s.Network.Connected },
			NetworkRadio:      func(s state.Snapshot) bool { return s.Network.RadioEnabled },
			BluetoothPowered:  func(s state.Snapshot) bool { return s.BluetoothPowered },
			PowerSaving:       func(s state.Snapshot) bool { return s.PowerProfile == "power-saver" },
			NightLightRunning: func(s state.Snapshot) bool { return s.NightLight },
			DarkStyleEnabled:  func(s state.Snapshot) bool { return s.DarkStyle },
			AirplaneEnabled:   func(s state.Snapshot) bool { return s.AirplaneMode },
		},
		List: map[string]func(state.Snapshot) []Item{
			NetworkList:   networkItems,
			BluetoothList: bluetoothItems,
			PowerList:     profileItems,
		},
		Level: map[string]func(state.Snapshot) int{
			VolumeLevel:     func(s state.Snapshot) int { return s.Volume },
			BrightnessLevel: func(s state.Snapshot) int { return s.Brightness },
		},
	}
}

// networkItems lists active wired and mobile connections first, then the
// visible Wi-Fi networks.
func networkItems(s state.Snapshot) []Item {
	var items []Item
	for _, c := range s.Network.Active {
		if c.Kind == state.KindWiFi {
			continue
		}
		icon, _, _ := state.Describe(c.Kind, c.Name)
		items = append(items, Item{
			Icon:       icon,
			Label:      c.Name,
			Detail:     kindLabel(c.Kind),
			Ref:        c.Name,
			Connected:  true,
			Connect:    action.KindConnectionUp,
			Disconnect: action.KindDisconnectNetwork,
		})
	}

	for _, n := range s.WiFiNetworks {
		detail := fmt.Sprintf("%d%%", n.Signal)
		if n.Security != "" {
			detail += " " + n.Security
		}
		items = append(items, Item{
			Icon:       signalIcon(n.Signal),
			Label:      n.SSID,
			Detail:     detail,
			Ref:        n.SSID,
			Connected:  n.InUse,
			Connect:    action.KindConnectWiFi,
			Disconnect: action.KindDisconnectNetwork,
		})
	}
	return items
}

func bluetoothItems(s state.Snapshot) []Item {
	items := make([]Item, 0, len(s.BluetoothDevices))
	for _, d := range s.BluetoothDevices {
		icon, detail := iconBluetoothOn, "Paired"
		switch {
		case d.Connected:
			icon, detail = iconBluetoothConnected, "Connected"
		case !d.Paired:
			detail = "New"
		}
		items = append(items, Item{
			Icon:       icon,
			Label:      d.Name,
			Detail:     detail,
			Ref:        d.Address,
			Connected:  d.Connected,
			Unpaired:   !d.Paired,
			Connect:    action.KindConnectBluetooth,
			Disconnect: action.KindDisconnectBluetooth,
		})
	}
	return items
}

func profileItems(s state.Snapshot) []Item {
	items := make([]Item, 0, len(s.PowerProfiles))
	for _, p := range s.PowerProfiles {
		item := Item{
			Icon:      profileIcon(p),
			Label:     profileTitle(p),
			Ref:       p,
			Connected: p == s.PowerProfile,
			Connect:   action.KindPowerProfile,
		}
		if item.Connected {
			item.Detail = iconCheck
		}
		items = append(items, item)
	}
	return items
}

func connectedDevice(s state.Snapshot) string {
	for _, d := range s.BluetoothDevices {
		if d.Connected {
			return d.Name
		}
	}
	return ""
}

func profileIcon(profile string) string {
	switch profile {
	case "performance":
		return iconPerformance
	case "power-saver":
		return iconPowerSaver
	default:
		return iconBalanced
	}
}

// profileTitle turns "power-saver" into "Power Saver".
func profileTitle(profile string) string {
	words := strings.FieldsFunc(profile, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func kindLabel(kind state.NetworkKind) string {
	switch kind {
	case state.KindWired:
		return "Wired"
	case state.KindMobile:
		return "Mobile"
	}
	return string(kind)
}

func signalIcon(signal int) string {
	switch {
	case signal >= 75:
		return "󰤨"
	case signal >= 50:
		return "󰤥"
	case signal >= 25:
		return "󰤢"
	default:
		return "󰤟"
	}
}

func batteryIcon(percent int) string {
	switch {
	case percent >= 90:
		return "󰁹"
	case percent >= 60:
		return "󰂀"
	case percent >= 30:
		return "󰁾"
	default:
		return "󰁻"
	}
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}
