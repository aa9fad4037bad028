package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/module"
	"github.com/muurk/quickpanel/internal/state"
	"github.com/muurk/quickpanel/internal/sysexec"
	"github.com/muurk/quickpanel/internal/ui"
)

// Subcommand flags
var (
	outputFormat string
	summaryOnly  bool
	forceInit    bool
)

func init() {
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)

	stateCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json, yaml)")
	stateCmd.Flags().BoolVar(&summaryOnly, "summary", false, "Skip the detail lists (Wi-Fi, Bluetooth devices, profiles, color)")

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file after confirmation")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

// modulesCmd lists the registered modules
var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the panel modules",
	Long: `List every module of the panel layout in display order: header
buttons, sliders and the rows of tiles, with what activating each one does.`,
	RunE: runModules,
}

func runModules(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	reg := env.registry

	fmt.Println(ui.NewHeader("Modules", "quickpanel modules").Render())
	fmt.Println()

	var details []ui.Detail
	for _, d := range reg.Header() {
		details = append(details, ui.Detail{Key: d.ID, Value: "header  " + describe(d)})
	}
	for _, s := range reg.Sliders() {
		details = append(details, ui.Detail{Key: s.ID, Value: "slider  " + s.Label})
	}
	for i, row := range reg.Rows() {
		for _, d := range row {
			details = append(details, ui.Detail{Key: d.ID, Value: "row " + strconv.Itoa(i+1) + "   " + describe(d)})
		}
	}

	fmt.Println(ui.Table(details))
	return nil
}

// describe summarizes what activating d does.
func describe(d module.Descriptor) string {
	switch {
	case d.Expandable():
		return d.Title + " (expands " + d.Expand.Kind.String() + ")"
	case d.Toggle != "":
		return d.Title + " (toggles " + string(d.Toggle) + ")"
	case d.Command != "":
		return d.Title + " (launches " + d.Command + ")"
	}
	return d.Title
}

// stateCmd prints one state snapshot
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the current system state",
	Long: `Query every facility the panel reads and print the result.

Failed lookups show the same defaults the panel would display.`,
	Example: `  # Everything, including Wi-Fi networks and Bluetooth devices
  quickpanel state

  # Just the values shown on the collapsed panel
  quickpanel state --summary

  # JSON output for scripting
  quickpanel state --format json`,
	RunE: runState,
}

func runState(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	req := state.Everything
	if summaryOnly {
		req = state.Summary
	}
	snap := env.provider.Snapshot(cmd.Context(), req)

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(snap)
	case "table":
		fmt.Println(ui.NewHeader("System State", "quickpanel state").Render())
		fmt.Println()
		fmt.Println(ui.Table(snapshotDetails(snap)))
		return nil
	}
	return fmt.Errorf("unknown format %q (use table, json or yaml)", outputFormat)
}

func snapshotDetails(s state.Snapshot) []ui.Detail {
	network := string(s.Network.Kind)
	if s.Network.Name != "" {
		network += " (" + s.Network.Name + ")"
	}

	details := []ui.Detail{
		{Key: "Network", Value: network},
		{Key: "Wi-Fi radio", Value: onOff(s.Network.RadioEnabled)},
		{Key: "Airplane mode", Value: onOff(s.AirplaneMode)},
		{Key: "Bluetooth", Value: onOff(s.BluetoothPowered)},
		{Key: "Power profile", Value: s.PowerProfile},
		{Key: "Night light", Value: onOff(s.NightLight)},
		{Key: "Dark style", Value: onOff(s.DarkStyle)},
		{Key: "Volume", Value: strconv.Itoa(s.Volume) + "%"},
		{Key: "Brightness", Value: strconv.Itoa(s.Brightness) + "%"},
		{Key: "Battery", Value: strconv.Itoa(s.Battery) + "%"},
	}

	if s.Request.Has(state.WiFiList) {
		for _, n := range s.WiFiNetworks {
			value := strconv.Itoa(n.Signal) + "% " + n.Security
			if n.InUse {
				value += " (connected)"
			}
			details = append(details, ui.Detail{Key: "Wi-Fi " + n.SSID, Value: strings.TrimSpace(value)})
		}
	}
	if s.Request.Has(state.BluetoothList) {
		for _, d := range s.BluetoothDevices {
			value := d.Address
			switch {
			case d.Connected:
				value += " (connected)"
			case !d.Paired:
				value += " (unpaired)"
			}
			details = append(details, ui.Detail{Key: "Device " + d.Name, Value: value})
		}
	}
	if s.Request.Has(state.ProfileList) {
		details = append(details, ui.Detail{Key: "Profiles", Value: strings.Join(s.PowerProfiles, ", ")})
	}
	if s.Request.Has(state.ColorValue) {
		details = append(details, ui.Detail{Key: "Last color", Value: s.LastColor})
	}
	return details
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// doctorCmd checks the external tools
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the external tools are installed",
	Long: `Look up every external tool the panel invokes. Missing optional tools
only degrade their own module to its defaults; a missing required tool
makes this command fail.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := sysexec.CheckTools(state.Tools(state.OptionsFromConfig(cfg)))

	fmt.Println(ui.NewHeader("Doctor", "quickpanel doctor").Render())
	fmt.Println()
	fmt.Println(ui.Checks(report))
	fmt.Println()

	if !report.AllRequired {
		var names []string
		for _, c := range report.Missing() {
			if !c.Optional {
				names = append(names, c.Name)
			}
		}
		fmt.Println(ui.NewFailureResult("Required tools missing", errors.New(strings.Join(names, ", ")), []string{
			"Install NetworkManager to provide nmcli",
			"Make sure the tools are on PATH for the session that opens the panel",
		}).Render())
		return errors.New("required tools missing")
	}

	if missing := report.Missing(); len(missing) > 0 {
		fmt.Println(ui.NewWarningResult("Some modules will show defaults",
			ui.Detail{Key: "Missing", Value: strconv.Itoa(len(missing)) + " optional tool(s)"}).Render())
		return nil
	}

	fmt.Println(ui.NewSuccessResult("All tools found").Render())
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return yaml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.CreateDefaultConfig()
	if err == nil {
		fmt.Println(ui.NewSuccessResult("Config written", ui.Detail{Key: "Path", Value: path}).Render())
		return nil
	}
	if !forceInit {
		return err
	}

	dir, dirErr := config.GetConfigDir()
	if dirErr != nil {
		return dirErr
	}
	path = filepath.Join(dir, "config.yaml")
	if !ui.Confirm(os.Stdin, os.Stdout, "Overwrite config", "Replace "+path+" with the defaults?") {
		return errors.New("config init cancelled")
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Println(ui.NewSuccessResult("Config written", ui.Detail{Key: "Path", Value: path}).Render())
	return nil
}
