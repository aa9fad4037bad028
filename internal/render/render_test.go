package render

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/expansion"
	"github.com/muurk/quickpanel/internal/module"
	"github.com/muurk/quickpanel/internal/state"
	"github.com/muurk/quickpanel/internal/sysexec/sysexectest"
)

func testRegistry(t *testing.T) *module.Registry {
	t.Helper()
	reg, err := module.Default(config.Default())
	if err != nil {
		t.Fatalf("module.Default() error = %v", err)
	}
	return reg
}

func expanded(ids ...string) *expansion.State {
	s := expansion.New()
	for _, id := range ids {
		s.Toggle(id)
	}
	return s
}

func findModule(t *testing.T, tree Tree, id string) Module {
	t.Helper()
	for _, row := range tree.Rows {
		for _, m := range row.Modules {
			if m.ID == id {
				return m
			}
		}
	}
	t.Fatalf("module %q not rendered", id)
	return Module{}
}

func findSection(t *testing.T, tree Tree, id string) Section {
	t.Helper()
	sections := append([]Section(nil), tree.HeaderSections...)
	for _, row := range tree.Rows {
		sections = append(sections, row.Sections...)
	}
	for _, s := range sections {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("section %q not rendered", id)
	return Section{}
}

func sampleSnapshot() state.Snapshot {
	return state.Snapshot{
		Network: state.NetworkStatus{
			Connected:    true,
			Kind:         state.KindWiFi,
			Name:         "Home",
			Icon:         state.IconWiFi,
			RadioEnabled: true,
			Active:       []state.Connection{{Name: "Home", Kind: state.KindWiFi}},
		},
		WiFiNetworks:     []state.WiFiNetwork{{SSID: "Home", Signal: 90, InUse: true}, {SSID: "Cafe", Signal: 40}},
		BluetoothPowered: true,
		PowerProfile:     "balanced",
		Volume:           30,
		Brightness:       70,
		Battery:          64,
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	reg := testRegistry(t)
	res := module.DefaultResolvers()
	snap := sampleSnapshot()
	exp := expanded(module.IDNetwork)

	first := Render(reg, res, snap, exp)
	second := Render(reg, res, snap, exp)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Render() not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestRenderNetworkDisabled(t *testing.T) {
	reg := testRegistry(t)
	snap := state.Snapshot{}
	snap.Network.Kind = state.KindDisabled
	snap.Network.Icon, snap.Network.Name, snap.Network.Connected = state.Describe(state.KindDisabled, "")

	tree := Render(reg, module.DefaultResolvers(), snap, expansion.New())

	network := findModule(t, tree, module.IDNetwork)
	if network.Active {
		t.Error("disabled network should be inactive")
	}
	if network.Subtitle != "Off" {
		t.Errorf("Subtitle = %q, want Off", network.Subtitle)
	}
	if network.Icon != state.IconWiFiOff {
		t.Errorf("Icon = %q, want Wi-Fi off glyph", network.Icon)
	}
}

func TestRenderSectionsOnlyWhenExpanded(t *testing.T) {
	reg := testRegistry(t)
	snap := sampleSnapshot()

	collapsed := Render(reg, module.DefaultResolvers(), snap, expansion.New())
	for _, row := range collapsed.Rows {
		if len(row.Sections) != 0 {
			t.Errorf("collapsed row has sections: %+v", row.Sections)
		}
	}

	tree := Render(reg, module.DefaultResolvers(), snap, expanded(module.IDNetwork))
	network := findModule(t, tree, module.IDNetwork)
	if !network.Expanded || network.Action != action.Expand(module.IDNetwork) {
		t.Errorf("network module = %+v", network)
	}

	sec := findSection(t, tree, module.IDNetwork)
	if sec.Switch == nil || !sec.Switch.On || sec.Switch.Action != action.Switch(action.KindWiFiRadio, false) {
		t.Errorf("switch = %+v", sec.Switch)
	}
	if len(sec.Items) != 2 {
		t.Fatalf("items = %+v", sec.Items)
	}
	if sec.Items[0].Verb != "Disconnect" || sec.Items[0].Action != action.Target(action.KindDisconnectNetwork, module.IDNetwork, "Home") {
		t.Errorf("items[0] = %+v", sec.Items[0])
	}
	if sec.Items[1].Verb != "Connect" || sec.Items[1].Action != action.Target(action.KindConnectWiFi, module.IDNetwork, "Cafe") {
		t.Errorf("items[1] = %+v", sec.Items[1])
	}
	if len(sec.Footer) != 2 || sec.Footer[0].Action != action.Launch("ghostty -e nmtui") || sec.Footer[1].Action != action.Refresh() {
		t.Errorf("footer = %+v", sec.Footer)
	}
}

func TestRenderCapsLists(t *testing.T) {
	reg := testRegistry(t)
	snap := sampleSnapshot()
	snap.WiFiNetworks = nil
	for i := 0; i < 25; i++ {
		snap.WiFiNetworks = append(snap.WiFiNetworks, state.WiFiNetwork{SSID: fmt.Sprintf("net-%02d", i), Signal: 50})
	}

	sec := findSection(t, Render(reg, module.DefaultResolvers(), snap, expanded(module.IDNetwork)), module.IDNetwork)
	if len(sec.Items) != module.MaxListItems {
		t.Errorf("items = %d, want %d", len(sec.Items), module.MaxListItems)
	}
}

func TestRenderEmptyList(t *testing.T) {
	reg := testRegistry(t)
	snap := sampleSnapshot()

	sec := findSection(t, Render(reg, module.DefaultResolvers(), snap, expanded(module.IDBluetooth)), module.IDBluetooth)
	if len(sec.Items) != 0 || sec.Empty != "No devices found" {
		t.Errorf("section = %+v", sec)
	}
}

func TestRenderTogglesInvertActiveState(t *testing.T) {
	reg := testRegistry(t)
	snap := sampleSnapshot()
	snap.NightLight = true

	tree := Render(reg, module.DefaultResolvers(), snap, expansion.New())

	night := findModule(t, tree, module.IDNightLight)
	if !night.Active || night.Action != action.Switch(action.KindNightLight, false) {
		t.Errorf("night light = %+v", night)
	}
	dark := findModule(t, tree, module.IDDarkStyle)
	if dark.Active || dark.Action != action.Switch(action.KindDarkStyle, true) {
		t.Errorf("dark style = %+v", dark)
	}
}

func TestRenderHeader(t *testing.T) {
	reg := testRegistry(t)
	snap := sampleSnapshot()
	snap.LastColor = "#1E90FF"

	tree := Render(reg, module.DefaultResolvers(), snap, expanded(module.IDColorPicker))

	if tree.Status != "󰂀 64%" {
		t.Errorf("Status = %q", tree.Status)
	}
	if len(tree.Header) != 4 || tree.Header[2].Action != action.Launch("hyprlock") {
		t.Errorf("header = %+v", tree.Header)
	}
	if len(tree.Sliders) != 2 || tree.Sliders[0].Percent != 30 || tree.Sliders[1].Percent != 70 {
		t.Errorf("sliders = %+v", tree.Sliders)
	}

	sec := findSection(t, tree, module.IDColorPicker)
	if sec.Value != "#1E90FF" {
		t.Errorf("Value = %q", sec.Value)
	}
	if len(sec.Items) != 2 {
		t.Fatalf("items = %+v", sec.Items)
	}
	if sec.Items[0].Action != action.Launch("hyprpicker -a") {
		t.Errorf("pick action = %+v", sec.Items[0].Action)
	}
	if sec.Items[1].Action != action.Shell("printf '%s' '#1E90FF' | wl-copy") {
		t.Errorf("copy action = %+v", sec.Items[1].Action)
	}
}

func TestRenderIsolatesFailingResolvers(t *testing.T) {
	reg := testRegistry(t)
	res := module.DefaultResolvers()
	res.Text[module.NetworkName] = func(state.Snapshot) string { panic("nmcli exploded") }
	res.Text[module.NetworkIcon] = func(state.Snapshot) string { panic("nmcli exploded") }
	res.Flag[module.NetworkConnected] = func(state.Snapshot) bool { panic("nmcli exploded") }
	res.List[module.NetworkList] = func(state.Snapshot) []module.Item { panic("nmcli exploded") }
	delete(res.Text, module.BluetoothStatus)

	tree := Render(reg, res, sampleSnapshot(), expanded(module.IDNetwork))

	network := findModule(t, tree, module.IDNetwork)
	if network.Subtitle != UnknownText || network.Icon != UnknownIcon || network.Active {
		t.Errorf("network = %+v, want degraded defaults", network)
	}
	if sec := findSection(t, tree, module.IDNetwork); len(sec.Items) != 0 || sec.Empty == "" {
		t.Errorf("network section = %+v", sec)
	}
	if bt := findModule(t, tree, module.IDBluetooth); bt.Subtitle != UnknownText || !bt.Active {
		t.Errorf("bluetooth = %+v", bt)
	}
	if power := findModule(t, tree, module.IDPowerMode); power.Subtitle != "Balanced" {
		t.Errorf("power mode = %+v, other modules must still render", power)
	}
}

// TestBluetoothDisconnectRoundTrip follows a Bluetooth line item through
// the executor and a fresh snapshot.
func TestBluetoothDisconnectRoundTrip(t *testing.T) {
	const addr = "AA:BB:CC:DD:EE:FF"
	reg := testRegistry(t)
	res := module.DefaultResolvers()
	exp := expanded(module.IDBluetooth)

	runner := sysexectest.New().
		Output("bluetoothctl show", "\tPowered: yes\n").
		Output("bluetoothctl devices Paired", "Device "+addr+" Headphones\n").
		Output("bluetoothctl devices Connected", "Device "+addr+" Headphones\n").
		Output("bluetoothctl disconnect "+addr, "Successful disconnected\n")
	provider := state.NewProvider(runner, nil, state.Options{QueryTimeout: time.Second, ActionTimeout: time.Second})
	executor := action.NewExecutor(provider, action.Settings{})
	ctx := context.Background()

	req := reg.Needs(exp.IDs())
	sec := findSection(t, Render(reg, res, provider.Snapshot(ctx, req), exp), module.IDBluetooth)
	if len(sec.Items) != 1 || sec.Items[0].Verb != "Disconnect" {
		t.Fatalf("items = %+v, want one Disconnect item", sec.Items)
	}

	outcome := executor.Run(ctx, sec.Items[0].Action)
	if !outcome.Rebuild {
		t.Fatalf("Run() = %+v, want rebuild", outcome)
	}
	if !runner.Called("bluetoothctl disconnect " + addr) {
		t.Fatalf("disconnect not issued: %v", runner.Calls())
	}

	// The service now reports the device as disconnected
	runner.Output("bluetoothctl devices Connected", "")

	sec = findSection(t, Render(reg, res, provider.Snapshot(ctx, req), exp), module.IDBluetooth)
	if len(sec.Items) != 1 || sec.Items[0].Verb != "Connect" {
		t.Fatalf("items = %+v, want one Connect item", sec.Items)
	}
	if sec.Items[0].Action != action.Target(action.KindConnectBluetooth, module.IDBluetooth, addr) {
		t.Errorf("action = %+v", sec.Items[0].Action)
	}
}

// TestBluetoothPairsDiscoveredDevice offers pairing for a device the
// controller has seen but never paired, and runs the pairing sequence.
func TestBluetoothPairsDiscoveredDevice(t *testing.T) {
	const addr = "11:22:33:44:55:66"
	reg := testRegistry(t)
	res := module.DefaultResolvers()
	exp := expanded(module.IDBluetooth)

	runner := sysexectest.New().
		Output("bluetoothctl show", "\tPowered: yes\n").
		Output("bluetoothctl devices Paired", "").
		Output("bluetoothctl devices Connected", "").
		Output("bluetoothctl devices", "Device "+addr+" Speaker\n").
		Output("bluetoothctl info "+addr, "Device "+addr+"\n\tPaired: no\n").
		Output("bluetoothctl pair "+addr, "Pairing successful\n").
		Output("bluetoothctl trust "+addr, "").
		Output("bluetoothctl connect "+addr, "Connection successful\n")
	provider := state.NewProvider(runner, nil, state.Options{QueryTimeout: time.Second, ActionTimeout: time.Second})
	executor := action.NewExecutor(provider, action.Settings{})
	ctx := context.Background()

	sec := findSection(t, Render(reg, res, provider.Snapshot(ctx, reg.Needs(exp.IDs())), exp), module.IDBluetooth)
	if len(sec.Items) != 1 || sec.Items[0].Verb != "Pair" {
		t.Fatalf("items = %+v, want one Pair item", sec.Items)
	}
	if sec.Items[0].Action != action.Target(action.KindConnectBluetooth, module.IDBluetooth, addr) {
		t.Errorf("action = %+v", sec.Items[0].Action)
	}

	executor.Run(ctx, sec.Items[0].Action)
	if !runner.Called("bluetoothctl pair "+addr) || !runner.Called("bluetoothctl connect "+addr) {
		t.Errorf("pairing not issued: %v", runner.Calls())
	}
}
