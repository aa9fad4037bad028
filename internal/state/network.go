package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Describe maps an uplink kind and connection name to the glyph, label and
// active flag the network module displays.
func Describe(kind NetworkKind, name string) (icon, label string, active bool) {
	switch kind {
	case KindWired:
		return IconWired, "Wired", true
	case KindWiFi:
		return IconWiFi, name, true
	case KindMobile:
		return IconMobile, name, true
	case KindNone:
		return IconDisconnected, "Not Connected", false
	case KindDisabled:
		return IconWiFiOff, "Off", false
	default:
		return IconDisconnected, "Unknown", false
	}
}

// NetworkStatus reports the current uplink from the NetworkManager device
// table. Default: UnknownNetwork().
func (p *Provider) NetworkStatus(ctx context.Context) NetworkStatus {
	return lookup(ctx, "network", UnknownNetwork(), func(ctx context.Context) (NetworkStatus, error) {
		out, err := p.output(ctx, "nmcli", "-t", "-f", "TYPE,STATE,CONNECTION", "device")
		if err != nil {
			return NetworkStatus{}, err
		}
		return parseDeviceStatus(out)
	})
}

// WiFiNetworks lists visible access points. Default: empty.
func (p *Provider) WiFiNetworks(ctx context.Context) []WiFiNetwork {
	return lookup(ctx, "wifi-list", []WiFiNetwork(nil), func(ctx context.Context) ([]WiFiNetwork, error) {
		out, err := p.output(ctx, "nmcli", "-t", "-f", "IN-USE,SSID,SIGNAL,SECURITY", "device", "wifi", "list")
		if err != nil {
			return nil, err
		}
		return parseWiFiList(out), nil
	})
}

// AirplaneMode reports whether both the Wi-Fi and WWAN radios are
// disabled. Default: false.
func (p *Provider) AirplaneMode(ctx context.Context) bool {
	return lookup(ctx, "airplane", false, func(ctx context.Context) (bool, error) {
		out, err := p.output(ctx, "nmcli", "radio", "all")
		if err != nil {
			return false, err
		}
		return parseRadioAll(out)
	})
}

// SetWiFiRadio switches the Wi-Fi radio.
func (p *Provider) SetWiFiRadio(ctx context.Context, on bool) error {
	return p.mutate(ctx, "nmcli", "radio", "wifi", onOff(on))
}

// SetAirplaneMode switches every radio off (on=true) or back on.
func (p *Provider) SetAirplaneMode(ctx context.Context, on bool) error {
	return p.mutate(ctx, "nmcli", "radio", "all", onOff(!on))
}

// ConnectWiFi joins a visible network by SSID. A failure caused by missing
// secrets surfaces as *sysexec.ExecutionError with NetworkManager's stderr.
func (p *Provider) ConnectWiFi(ctx context.Context, ssid string) error {
	return p.mutate(ctx, "nmcli", "device", "wifi", "connect", ssid)
}

// ConnectionUp activates a saved connection by name.
func (p *Provider) ConnectionUp(ctx context.Context, name string) error {
	return p.mutate(ctx, "nmcli", "connection", "up", name)
}

// ConnectionDown deactivates an active connection by name.
func (p *Provider) ConnectionDown(ctx context.Context, name string) error {
	return p.mutate(ctx, "nmcli", "connection", "down", name)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// splitTerse splits one line of nmcli terse output, honouring the \: and
// \\ escapes nmcli uses inside values.
func splitTerse(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, cur.String())
}

func deviceKind(deviceType string) (NetworkKind, bool) {
	switch deviceType {
	case "ethernet":
		return KindWired, true
	case "wifi":
		return KindWiFi, true
	case "gsm", "cdma":
		return KindMobile, true
	}
	return "", false
}

// parseDeviceStatus interprets `nmcli -t -f TYPE,STATE,CONNECTION device`.
// Wired wins over Wi-Fi, which wins over mobile.
func parseDeviceStatus(out string) (NetworkStatus, error) {
	var (
		best         *Connection
		active       []Connection
		haveWiFi     bool
		wifiUsable   bool
		parsedFields bool
	)

	for _, line := range strings.Split(out, "\n") {
		fields := splitTerse(strings.TrimSpace(line))
		if len(fields) < 3 {
			continue
		}
		parsedFields = true

		kind, ok := deviceKind(fields[0])
		if !ok {
			continue
		}
		state := fields[1]
		if kind == KindWiFi {
			haveWiFi = true
			if state != "unavailable" {
				wifiUsable = true
			}
		}
		// "connected (externally)" marks connections made outside NetworkManager.
		if !strings.HasPrefix(state, "connected") || fields[2] == "" {
			continue
		}

		conn := Connection{Name: fields[2], Kind: kind}
		active = append(active, conn)
		if best == nil || rank(conn.Kind) < rank(best.Kind) {
			c := conn
			best = &c
		}
	}

	if !parsedFields && strings.TrimSpace(out) != "" {
		return NetworkStatus{}, errors.New("unrecognised nmcli device output")
	}

	status := NetworkStatus{RadioEnabled: wifiUsable, Active: active}
	switch {
	case best != nil:
		status.Connected = true
		status.Kind = best.Kind
	case haveWiFi && !wifiUsable:
		status.Kind = KindDisabled
	default:
		status.Kind = KindNone
	}

	var name string
	if best != nil {
		name = best.Name
	}
	status.Icon, status.Name, _ = Describe(status.Kind, name)
	return status, nil
}

func rank(kind NetworkKind) int {
	switch kind {
	case KindWired:
		return 0
	case KindWiFi:
		return 1
	default:
		return 2
	}
}

// parseWiFiList interprets `nmcli -t -f IN-USE,SSID,SIGNAL,SECURITY device
// wifi list`. Hidden networks are skipped and duplicate SSIDs (one per
// BSSID) are folded into the first, strongest, entry.
func parseWiFiList(out string) []WiFiNetwork {
	var networks []WiFiNetwork
	index := make(map[string]int)

	for _, line := range strings.Split(out, "\n") {
		fields := splitTerse(strings.TrimRight(line, "\r"))
		if len(fields) < 4 {
			continue
		}
		ssid := fields[1]
		if ssid == "" || ssid == "--" {
			continue
		}
		inUse := strings.TrimSpace(fields[0]) == "*"

		if i, ok := index[ssid]; ok {
			networks[i].InUse = networks[i].InUse || inUse
			continue
		}

		signal, _ := strconv.Atoi(fields[2])
		security := fields[3]
		if security == "--" {
			security = ""
		}
		index[ssid] = len(networks)
		networks = append(networks, WiFiNetwork{
			SSID:     ssid,
			Signal:   signal,
			Security: security,
			InUse:    inUse,
		})
	}

	return networks
}

// parseRadioAll interprets the two-line table printed by `nmcli radio all`.
func parseRadioAll(out string) (bool, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return false, fmt.Errorf("unexpected nmcli radio output: %q", out)
	}

	header := strings.Fields(lines[0])
	values := strings.Fields(lines[1])
	column := func(name string) (string, bool) {
		for i, h := range header {
			if h == name && i < len(values) {
				return values[i], true
			}
		}
		return "", false
	}

	wifi, ok1 := column("WIFI")
	wwan, ok2 := column("WWAN")
	if !ok1 || !ok2 {
		return false, fmt.Errorf("missing WIFI/WWAN columns in %q", lines[0])
	}
	return wifi == "disabled" && wwan == "disabled", nil
}
