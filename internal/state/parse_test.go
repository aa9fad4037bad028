package state

import (
	"reflect"
	"testing"
)

func TestParseDeviceStatus(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		kind      NetworkKind
		label     string
		icon      string
		connected bool
		radio     bool
		active    int
	}{
		{
			name:      "wifi connected",
			output:    "wifi:connected:Home\\:5G\nethernet:unavailable:\nloopback:connected (externally):lo\n",
			kind:      KindWiFi,
			label:     "Home:5G",
			icon:      IconWiFi,
			connected: true,
			radio:     true,
			active:    1,
		},
		{
			name:      "wired preferred over wifi",
			output:    "wifi:connected:Home\nethernet:connected:Wired connection 1\n",
			kind:      KindWired,
			label:     "Wired",
			icon:      IconWired,
			connected: true,
			radio:     true,
			active:    2,
		},
		{
			name:      "externally managed wired",
			output:    "ethernet:connected (externally):Wired connection 1\nwifi:disconnected:\n",
			kind:      KindWired,
			label:     "Wired",
			icon:      IconWired,
			connected: true,
			radio:     true,
			active:    1,
		},
		{
			name:      "mobile",
			output:    "gsm:connected:Carrier\nwifi:disconnected:\n",
			kind:      KindMobile,
			label:     "Carrier",
			icon:      IconMobile,
			connected: true,
			radio:     true,
			active:    1,
		},
		{
			name:   "radio on, nothing connected",
			output: "wifi:disconnected:\nethernet:unavailable:\n",
			kind:   KindNone,
			label:  "Not Connected",
			icon:   IconDisconnected,
			radio:  true,
		},
		{
			name:   "radio off",
			output: "wifi:unavailable:\n",
			kind:   KindDisabled,
			label:  "Off",
			icon:   IconWiFiOff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := parseDeviceStatus(tt.output)
			if err != nil {
				t.Fatalf("parseDeviceStatus() error = %v", err)
			}
			if status.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", status.Kind, tt.kind)
			}
			if status.Name != tt.label {
				t.Errorf("Name = %q, want %q", status.Name, tt.label)
			}
			if status.Icon != tt.icon {
				t.Errorf("Icon = %q, want %q", status.Icon, tt.icon)
			}
			if status.Connected != tt.connected {
				t.Errorf("Connected = %v, want %v", status.Connected, tt.connected)
			}
			if status.RadioEnabled != tt.radio {
				t.Errorf("RadioEnabled = %v, want %v", status.RadioEnabled, tt.radio)
			}
			if len(status.Active) != tt.active {
				t.Errorf("Active = %v, want %d entries", status.Active, tt.active)
			}
		})
	}
}

func TestParseDeviceStatusRejectsGarbage(t *testing.T) {
	if _, err := parseDeviceStatus("Error: NetworkManager is not running."); err == nil {
		t.Error("expected error for unrecognised output")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		kind   NetworkKind
		name   string
		label  string
		active bool
	}{
		{KindWired, "eth", "Wired", true},
		{KindWiFi, "Home", "Home", true},
		{KindMobile, "Carrier", "Carrier", true},
		{KindNone, "", "Not Connected", false},
		{KindDisabled, "", "Off", false},
		{KindUnknown, "", "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			_, label, active := Describe(tt.kind, tt.name)
			if label != tt.label || active != tt.active {
				t.Errorf("Describe() = %q/%v, want %q/%v", label, active, tt.label, tt.active)
			}
		})
	}
}

func TestParseWiFiList(t *testing.T) {
	output := "*:Home:82:WPA2\n :Home:60:WPA2\n :Cafe\\:Free:40:--\n ::30:WPA2\n :Office:55:WPA1 WPA2\n"

	got := parseWiFiList(output)
	want := []WiFiNetwork{
		{SSID: "Home", Signal: 82, Security: "WPA2", InUse: true},
		{SSID: "Cafe:Free", Signal: 40},
		{SSID: "Office", Signal: 55, Security: "WPA1 WPA2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseWiFiList() = %+v, want %+v", got, want)
	}
}

func TestParseRadioAll(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    bool
		wantErr bool
	}{
		{"all enabled", "WIFI-HW  WIFI     WWAN-HW  WWAN\nenabled  enabled  enabled  enabled\n", false, false},
		{"wifi only disabled", "WIFI-HW  WIFI      WWAN-HW  WWAN\nenabled  disabled  enabled  enabled\n", false, false},
		{"airplane", "WIFI-HW  WIFI      WWAN-HW  WWAN\nenabled  disabled  enabled  disabled\n", true, false},
		{"truncated", "WIFI-HW  WIFI\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRadioAll(tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRadioAll() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseRadioAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDevicesAndMerge(t *testing.T) {
	paired := parseDevices("Device AA:AA:AA:AA:AA:AA Keyboard K380\nDevice BB:BB:BB:BB:BB:BB Buds\ngarbage\n")
	for i := range paired {
		paired[i].Paired = true
	}
	connected := parseDevices("Device BB:BB:BB:BB:BB:BB Buds\nDevice CC:CC:CC:CC:CC:CC CC:CC:CC:CC:CC:CC\n")
	for i := range connected {
		connected[i].Connected = true
	}

	known := parseDevices("Device AA:AA:AA:AA:AA:AA Keyboard K380\nDevice CC:CC:CC:CC:CC:CC CC:CC:CC:CC:CC:CC\nDevice DD:DD:DD:DD:DD:DD Speaker\n")

	got := mergeDevices(paired, connected, known)
	want := []BluetoothDevice{
		{Address: "AA:AA:AA:AA:AA:AA", Name: "Keyboard K380", Paired: true},
		{Address: "BB:BB:BB:BB:BB:BB", Name: "Buds", Paired: true, Connected: true},
		{Address: "CC:CC:CC:CC:CC:CC", Name: "CC:CC:CC:CC:CC:CC", Connected: true},
		{Address: "DD:DD:DD:DD:DD:DD", Name: "Speaker"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeDevices() = %+v, want %+v", got, want)
	}

	if mergeDevices(nil, nil, nil) != nil {
		t.Error("mergeDevices(nil, nil, nil) should be nil")
	}
}

func TestParseProfiles(t *testing.T) {
	output := `  performance:
    CpuDriver:	intel_pstate
    PlatformDriver:	platform_profile
    Degraded:   no

* balanced:
    CpuDriver:	intel_pstate
    PlatformDriver:

  power-saver:
    CpuDriver:	intel_pstate
`
	want := []string{"performance", "balanced", "power-saver"}
	if got := parseProfiles(output); !reflect.DeepEqual(got, want) {
		t.Errorf("parseProfiles() = %v, want %v", got, want)
	}
}

func TestParseBrightness(t *testing.T) {
	tests := []struct {
		output  string
		want    int
		wantErr bool
	}{
		{"intel_backlight,backlight,19200,80%,24000", 80, false},
		{"amdgpu_bl0,backlight,1,0%,255", 0, false},
		{"amdgpu_bl0,backlight,255,100%,255\n", 100, false},
		{"garbage", 0, true},
		{"x,backlight,10,1%,0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			got, err := parseBrightness(tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBrightness() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBrightness() = %d, want %d", got, tt.want)
			}
		})
	}
}
