package state

import (
	"context"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DarkStyle reports whether the GTK theme is a dark variant. Default: false.
func (p *Provider) DarkStyle(ctx context.Context) bool {
	return lookup(ctx, "dark-style", false, func(ctx context.Context) (bool, error) {
		out, err := p.output(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
		if err != nil {
			return false, err
		}
		return strings.Contains(strings.ToLower(out), "dark"), nil
	})
}

// SetDarkStyle switches the GTK theme between Adwaita and Adwaita-dark.
func (p *Provider) SetDarkStyle(ctx context.Context, dark bool) error {
	theme := "Adwaita"
	if dark {
		theme = "Adwaita-dark"
	}
	return p.mutate(ctx, "gsettings", "set", "org.gnome.desktop.interface", "gtk-theme", theme)
}

// Volume returns the output volume percent. Default: 50.
func (p *Provider) Volume(ctx context.Context) int {
	return lookup(ctx, "volume", DefaultVolume, func(ctx context.Context) (int, error) {
		out, err := p.output(ctx, "pamixer", "--get-volume")
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(out)
		if err != nil {
			return 0, fmt.Errorf("parse volume %q: %w", out, err)
		}
		return clampPercent(v), nil
	})
}

// SetVolume sets the output volume percent.
func (p *Provider) SetVolume(ctx context.Context, percent int) error {
	return p.mutate(ctx, "pamixer", "--set-volume", strconv.Itoa(clampPercent(percent)))
}

// Brightness returns the backlight level as a percent of its maximum.
// Default: 50.
func (p *Provider) Brightness(ctx context.Context) int {
	return lookup(ctx, "brightness", DefaultBrightness, func(ctx context.Context) (int, error) {
		out, err := p.output(ctx, "brightnessctl", "-m")
		if err != nil {
			return 0, err
		}
		return parseBrightness(out)
	})
}

// SetBrightness sets the backlight level percent.
func (p *Provider) SetBrightness(ctx context.Context, percent int) error {
	return p.mutate(ctx, "brightnessctl", "set", strconv.Itoa(clampPercent(percent))+"%")
}

// Battery reads the battery capacity percent from sysfs. Default: 88.
func (p *Provider) Battery(ctx context.Context) int {
	return lookup(ctx, "battery", DefaultBattery, func(ctx context.Context) (int, error) {
		data, err := os.ReadFile(p.opts.BatteryPath)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			return 0, fmt.Errorf("parse battery capacity: %w", err)
		}
		return clampPercent(v), nil
	})
}

// LastColor returns the clipboard content when it is a #RRGGBB color.
// Default: "#000000".
func (p *Provider) LastColor(ctx context.Context) string {
	return lookup(ctx, "color", DefaultColor, func(ctx context.Context) (string, error) {
		out, err := p.output(ctx, "wl-paste", "--no-newline")
		if err != nil {
			return "", err
		}
		if !colorPattern.MatchString(out) {
			return "", fmt.Errorf("clipboard does not hold a color")
		}
		return strings.ToUpper(out), nil
	})
}

// parseBrightness interprets `brightnessctl -m`:
// "intel_backlight,backlight,19200,80%,24000".
func parseBrightness(out string) (int, error) {
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < 5 {
		return 0, fmt.Errorf("unexpected brightnessctl output: %q", out)
	}

	current, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("parse current brightness: %w", err)
	}
	maximum, err := strconv.Atoi(fields[4])
	if err != nil || maximum <= 0 {
		return 0, fmt.Errorf("parse max brightness %q", fields[4])
	}

	return clampPercent(int(math.Round(float64(current) * 100 / float64(maximum)))), nil
}
