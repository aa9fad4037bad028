package state

import (
	"context"
	"errors"
	"strings"
)

// PowerProfile returns the active power profile. Default: "balanced".
func (p *Provider) PowerProfile(ctx context.Context) string {
	return lookup(ctx, "power-profile", DefaultPowerProfile, func(ctx context.Context) (string, error) {
		out, err := p.output(ctx, "powerprofilesctl", "get")
		if err != nil {
			return "", err
		}
		if out == "" {
			return "", errors.New("empty power profile")
		}
		return out, nil
	})
}

// PowerProfiles lists the available profiles. Default: DefaultPowerProfiles.
func (p *Provider) PowerProfiles(ctx context.Context) []string {
	def := append([]string(nil), DefaultPowerProfiles...)
	return lookup(ctx, "power-profiles", def, func(ctx context.Context) ([]string, error) {
		out, err := p.output(ctx, "powerprofilesctl", "list")
		if err != nil {
			return nil, err
		}
		profiles := parseProfiles(out)
		if len(profiles) == 0 {
			return nil, errors.New("no profiles listed")
		}
		return profiles, nil
	})
}

// SetPowerProfile activates a profile by name.
func (p *Provider) SetPowerProfile(ctx context.Context, name string) error {
	return p.mutate(ctx, "powerprofilesctl", "set", name)
}

// parseProfiles extracts profile names from `powerprofilesctl list`, where
// each profile is a top-level "name:" line (prefixed with "*" when active)
// followed by indented "Key: value" details.
func parseProfiles(out string) []string {
	var profiles []string
	for _, line := range strings.Split(out, "\n") {
		if indent := len(line) - len(strings.TrimLeft(line, " *\t")); indent > 2 {
			continue
		}
		name, ok := strings.CutSuffix(strings.TrimLeft(strings.TrimSpace(line), "* "), ":")
		if !ok || name == "" || strings.ContainsAny(name, ": \t") {
			continue
		}
		profiles = append(profiles, name)
	}
	return profiles
}
