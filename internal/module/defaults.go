package module

import (
	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/state"
)

// Module ids of the built-in registry
const (
	IDColorPicker = "color"
	IDSettings    = "settings"
	IDLock        = "lock"
	IDPower       = "power"
	IDVolume      = "volume"
	IDBrightness  = "brightness"
	IDNetwork     = "network"
	IDBluetooth   = "bluetooth"
	IDPowerMode   = "power-mode"
	IDNightLight  = "night-light"
	IDDarkStyle   = "dark-style"
	IDAirplane    = "airplane"
)

// MaxListItems caps the network and Bluetooth lists.
const MaxListItems = 10

// Default builds the built-in registry. Launcher commands come from cfg.
func Default(cfg *config.Config) (*Registry, error) {
	cmds := cfg.Commands

	return New(Layout{
		Status: Resolved(BatteryText),
		Header: []Descriptor{
			{
				ID:    IDColorPicker,
				Icon:  Static("󰈊"),
				Title: "Color Picker",
				Expand: Custom(CustomSpec{
					Value: ColorValue,
					Fetch: state.ColorValue,
					Actions: []CustomAction{
						{Icon: "󰈊", Label: "Pick New Color", Template: cmds.ColorPicker, Close: true},
						{Icon: "󰆏", Label: "Copy to Clipboard", Template: cmds.CopyColor},
					},
				}),
			},
			{ID: IDSettings, Icon: Static("󰒓"), Title: "Settings", Command: cmds.Settings},
			{ID: IDLock, Icon: Static("󰌾"), Title: "Lock", Command: cmds.Lock},
			{
				ID:    IDPower,
				Icon:  Static("󰐥"),
				Title: "Power",
				Expand: StaticOptions(
					Option{Icon: "󰐥", Label: "Shut Down", Command: cmds.PowerOff, Close: true},
					Option{Icon: "󰜉", Label: "Restart", Command: cmds.Reboot, Close: true},
					Option{Icon: "󰤄", Label: "Sleep", Command: cmds.Suspend, Close: true},
					Option{Icon: "󰍃", Label: "Log Out", Command: cmds.Logout, Close: true},
				),
			},
		},
		Sliders: []Slider{
			{ID: IDVolume, Icon: "󰕾", Label: "Volume", Level: VolumeLevel, Kind: action.KindVolume},
			{ID: IDBrightness, Icon: "󰃠", Label: "Brightness", Level: BrightnessLevel, Kind: action.KindBrightness},
		},
		Rows: []Row{
			{
				{
					ID:       IDNetwork,
					Icon:     Resolved(NetworkIcon),
					Title:    "Network",
					Subtitle: Resolved(NetworkName),
					Active:   NetworkConnected,
					Expand: DynamicList(ListSpec{
						Source:   NetworkList,
						Fetch:    state.WiFiList,
						Switch:   &SwitchSpec{Label: "Wi-Fi", Flag: NetworkRadio, Kind: action.KindWiFiRadio},
						Settings: cfg.InTerminal(cmds.NetworkSettings),
						Refresh:  true,
						Limit:    MaxListItems,
						Empty:    "No networks found",
					}),
				},
				{
					ID:       IDBluetooth,
					Icon:     Resolved(BluetoothIcon),
					Title:    "Bluetooth",
					Subtitle: Resolved(BluetoothStatus),
					Active:   BluetoothPowered,
					Expand: DynamicList(ListSpec{
						Source:   BluetoothList,
						Fetch:    state.BluetoothList,
						Switch:   &SwitchSpec{Label: "Bluetooth", Flag: BluetoothPowered, Kind: action.KindBluetoothPower},
						Settings: cmds.BluetoothManager,
						Refresh:  true,
						Limit:    MaxListItems,
						Empty:    "No devices found",
					}),
				},
			},
			{
				{
					ID:       IDPowerMode,
					Icon:     Resolved(PowerIcon),
					Title:    "Power Mode",
					Subtitle: Resolved(PowerProfile),
					Active:   PowerSaving,
					Expand: DynamicList(ListSpec{
						Source:      PowerList,
						Fetch:       state.ProfileList,
						Empty:       "No profiles available",
						ConnectVerb: "Select",
					}),
				},
				{
					ID:       IDNightLight,
					Icon:     Static("󰖔"),
					Title:    "Night Light",
					Subtitle: Resolved(NightLightStatus),
					Active:   NightLightRunning,
					Toggle:   action.KindNightLight,
				},
			},
			{
				{
					ID:       IDDarkStyle,
					Icon:     Static("󰔎"),
					Title:    "Dark Style",
					Subtitle: Resolved(DarkStyleStatus),
					Active:   DarkStyleEnabled,
					Toggle:   action.KindDarkStyle,
				},
				{
					ID:       IDAirplane,
					Icon:     Static("󰀝"),
					Title:    "Airplane Mode",
					Subtitle: Resolved(AirplaneStatus),
					Active:   AirplaneEnabled,
					Toggle:   action.KindAirplaneMode,
				},
			},
		},
	})
}
