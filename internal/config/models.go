package config

import (
	"fmt"
	"time"
)

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Config represents the entire configuration file.
type Config struct {
	Version    int              `yaml:"version" toml:"version"`
	Panel      PanelConfig      `yaml:"panel" toml:"panel"`
	Timeouts   TimeoutConfig    `yaml:"timeouts" toml:"timeouts"`
	NightLight NightLightConfig `yaml:"night_light" toml:"night_light"`
	Commands   CommandConfig    `yaml:"commands" toml:"commands"`
	Battery    BatteryConfig    `yaml:"battery" toml:"battery"`
}

// PanelConfig controls panel geometry.
type PanelConfig struct {
	Anchor string `yaml:"anchor" toml:"anchor"` // top-right, top-left, bottom-right, bottom-left
	Width  int    `yaml:"width" toml:"width"`   // Panel width in cells
	Margin int    `yaml:"margin" toml:"margin"` // Distance from the anchored edges
}

// TimeoutConfig bounds external lookups and blocking actions.
type TimeoutConfig struct {
	Query  Duration `yaml:"query" toml:"query"`
	Action Duration `yaml:"action" toml:"action"`
}

// NightLightConfig describes the night-light helper process.
type NightLightConfig struct {
	Process     string `yaml:"process" toml:"process"`         // Helper binary, also used for process detection
	Temperature int    `yaml:"temperature" toml:"temperature"` // Color temperature passed on start
}

// CommandConfig lists launcher command lines. Each entry is run with sh -c.
type CommandConfig struct {
	Settings         string `yaml:"settings" toml:"settings"`
	Lock             string `yaml:"lock" toml:"lock"`
	PowerOff         string `yaml:"poweroff" toml:"poweroff"`
	Reboot           string `yaml:"reboot" toml:"reboot"`
	Suspend          string `yaml:"suspend" toml:"suspend"`
	Logout           string `yaml:"logout" toml:"logout"`
	ColorPicker      string `yaml:"color_picker" toml:"color_picker"`
	CopyColor        string `yaml:"copy_color" toml:"copy_color"` // text/template, {{.Value}} is the color
	Terminal         string `yaml:"terminal" toml:"terminal"`     // Prefix used to open a tool in a terminal
	NetworkSettings  string `yaml:"network_settings" toml:"network_settings"`
	BluetoothManager string `yaml:"bluetooth_manager" toml:"bluetooth_manager"`
}

// BatteryConfig points at the sysfs capacity file.
type BatteryConfig struct {
	CapacityPath string `yaml:"capacity_path" toml:"capacity_path"`
}

// Anchor values
const (
	AnchorTopRight    = "top-right"
	AnchorTopLeft     = "top-left"
	AnchorBottomRight = "bottom-right"
	AnchorBottomLeft  = "bottom-left"
)

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Panel: PanelConfig{
			Anchor: AnchorTopRight,
			Width:  44,
			Margin: 1,
		},
		Timeouts: TimeoutConfig{
			Query:  Duration{2 * time.Second},
			Action: Duration{3 * time.Second},
		},
		NightLight: NightLightConfig{
			Process:     "hyprsunset",
			Temperature: 4000,
		},
		Commands: CommandConfig{
			Settings:         "gnome-control-center",
			Lock:             "hyprlock",
			PowerOff:         "systemctl poweroff",
			Reboot:           "systemctl reboot",
			Suspend:          "systemctl suspend",
			Logout:           "hyprctl dispatch exit",
			ColorPicker:      "hyprpicker -a",
			CopyColor:        `printf '%s' '{{.Value}}' | wl-copy`,
			Terminal:         "ghostty -e",
			NetworkSettings:  "nmtui",
			BluetoothManager: "blueberry",
		},
		Battery: BatteryConfig{
			CapacityPath: "/sys/class/power_supply/BAT0/capacity",
		},
	}
}

// Validate checks value ranges that would make the panel unusable.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	switch c.Panel.Anchor {
	case AnchorTopRight, AnchorTopLeft, AnchorBottomRight, AnchorBottomLeft:
	default:
		return fmt.Errorf("invalid panel anchor %q", c.Panel.Anchor)
	}
	if c.Panel.Width < 30 {
		return fmt.Errorf("panel width %d is too small (minimum 30)", c.Panel.Width)
	}
	if c.Timeouts.Query.Duration <= 0 || c.Timeouts.Action.Duration <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.NightLight.Temperature < 1000 || c.NightLight.Temperature > 20000 {
		return fmt.Errorf("night light temperature %d out of range (1000-20000)", c.NightLight.Temperature)
	}
	return nil
}

// InTerminal returns the command line that runs tool inside the configured terminal.
func (c *Config) InTerminal(tool string) string {
	if c.Commands.Terminal == "" {
		return tool
	}
	return c.Commands.Terminal + " " + tool
}
