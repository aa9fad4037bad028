package state

import (
	"context"
	"fmt"
	"strings"
)

// BluetoothPowered reports the controller power state. Default: false.
func (p *Provider) BluetoothPowered(ctx context.Context) bool {
	return lookup(ctx, "bluetooth", false, func(ctx context.Context) (bool, error) {
		out, err := p.output(ctx, "bluetoothctl", "show")
		if err != nil {
			return false, err
		}
		return parsePowered(out)
	})
}

// BluetoothDevices lists paired devices. Default: empty.
func (p *Provider) BluetoothDevices(ctx context.Context) []BluetoothDevice {
	return lookup(ctx, "bluetooth-paired", []BluetoothDevice(nil), func(ctx context.Context) ([]BluetoothDevice, error) {
		out, err := p.output(ctx, "bluetoothctl", "devices", "Paired")
		if err != nil {
			return nil, err
		}
		devices := parseDevices(out)
		for i := range devices {
			devices[i].Paired = true
		}
		return devices, nil
	})
}

// BluetoothConnected lists connected devices. Default: empty.
func (p *Provider) BluetoothConnected(ctx context.Context) []BluetoothDevice {
	return lookup(ctx, "bluetooth-connected", []BluetoothDevice(nil), func(ctx context.Context) ([]BluetoothDevice, error) {
		out, err := p.output(ctx, "bluetoothctl", "devices", "Connected")
		if err != nil {
			return nil, err
		}
		devices := parseDevices(out)
		for i := range devices {
			devices[i].Connected = true
		}
		return devices, nil
	})
}

// BluetoothKnown lists every device the controller knows about, including
// discovered devices that were never paired. Default: empty.
func (p *Provider) BluetoothKnown(ctx context.Context) []BluetoothDevice {
	return lookup(ctx, "bluetooth-known", []BluetoothDevice(nil), func(ctx context.Context) ([]BluetoothDevice, error) {
		out, err := p.output(ctx, "bluetoothctl", "devices")
		if err != nil {
			return nil, err
		}
		return parseDevices(out), nil
	})
}

// SetBluetoothPower switches the controller.
func (p *Provider) SetBluetoothPower(ctx context.Context, on bool) error {
	return p.mutate(ctx, "bluetoothctl", "power", onOff(on))
}

// ConnectBluetooth connects a device by address, pairing and trusting it
// first when bluetoothctl does not report it as paired.
func (p *Provider) ConnectBluetooth(ctx context.Context, address string) error {
	info, err := p.runner.Run(ctx, p.opts.QueryTimeout, "bluetoothctl", "info", address)
	paired := err == nil && strings.Contains(info.Stdout, "Paired: yes")

	if !paired {
		if err := p.mutate(ctx, "bluetoothctl", "pair", address); err != nil {
			return fmt.Errorf("pair %s: %w", address, err)
		}
		// Trust failures do not block the connection attempt
		_ = p.mutate(ctx, "bluetoothctl", "trust", address)
	}

	if err := p.mutate(ctx, "bluetoothctl", "connect", address); err != nil {
		return fmt.Errorf("connect %s: %w", address, err)
	}
	return nil
}

// DisconnectBluetooth disconnects a device by address.
func (p *Provider) DisconnectBluetooth(ctx context.Context, address string) error {
	return p.mutate(ctx, "bluetoothctl", "disconnect", address)
}

func parsePowered(out string) (bool, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(line, "Powered:"); ok {
			return strings.TrimSpace(value) == "yes", nil
		}
	}
	return false, fmt.Errorf("no Powered line in bluetoothctl output")
}

// parseDevices interprets lines of the form "Device AA:BB:CC:DD:EE:FF Name".
func parseDevices(out string) []BluetoothDevice {
	var devices []BluetoothDevice
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "Device" {
			continue
		}
		name := strings.TrimSpace(strings.Join(fields[2:], " "))
		if name == "" {
			name = fields[1]
		}
		devices = append(devices, BluetoothDevice{Address: fields[1], Name: name})
	}
	return devices
}

// mergeDevices combines the device lists by address: paired devices in
// order, then connected devices that are not paired, then the remaining
// known devices as unpaired.
func mergeDevices(paired, connected, known []BluetoothDevice) []BluetoothDevice {
	if len(paired) == 0 && len(connected) == 0 && len(known) == 0 {
		return nil
	}

	isConnected := make(map[string]bool, len(connected))
	for _, d := range connected {
		isConnected[d.Address] = true
	}

	merged := make([]BluetoothDevice, 0, len(paired)+len(connected)+len(known))
	seen := make(map[string]bool, len(paired)+len(connected))
	for _, d := range paired {
		d.Connected = isConnected[d.Address]
		merged = append(merged, d)
		seen[d.Address] = true
	}
	for _, d := range connected {
		if !seen[d.Address] {
			merged = append(merged, d)
			seen[d.Address] = true
		}
	}
	for _, d := range known {
		if !seen[d.Address] {
			d.Paired, d.Connected = false, false
			merged = append(merged, d)
			seen[d.Address] = true
		}
	}
	return merged
}
