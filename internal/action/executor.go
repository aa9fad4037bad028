package action

import (
	"context"
	"errors"
	"strings"

	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/logging"
	"github.com/muurk/quickpanel/internal/sysexec"
)

// Mutator is the set of best-effort mutations the executor dispatches to.
// *state.Provider implements it.
type Mutator interface {
	Launch(command string) error
	RunShell(ctx context.Context, command string) error

	SetWiFiRadio(ctx context.Context, on bool) error
	SetBluetoothPower(ctx context.Context, on bool) error
	SetAirplaneMode(ctx context.Context, on bool) error
	SetDarkStyle(ctx context.Context, dark bool) error
	StartNightLight(temperature int) error
	StopNightLight(ctx context.Context) error

	SetPowerProfile(ctx context.Context, name string) error
	ConnectWiFi(ctx context.Context, ssid string) error
	ConnectionUp(ctx context.Context, name string) error
	ConnectionDown(ctx context.Context, name string) error
	ConnectBluetooth(ctx context.Context, address string) error
	DisconnectBluetooth(ctx context.Context, address string) error

	SetVolume(ctx context.Context, percent int) error
	SetBrightness(ctx context.Context, percent int) error
}

// Settings holds the executor tunables.
type Settings struct {
	// NightLightTemperature is passed to the helper on start.
	NightLightTemperature int
	// NetworkFallback is launched when joining a Wi-Fi network needs
	// credentials the panel cannot ask for.
	NetworkFallback string
	// BluetoothFallback is launched when a device fails to connect.
	BluetoothFallback string
}

// SettingsFromConfig extracts executor settings from cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		NightLightTemperature: cfg.NightLight.Temperature,
		NetworkFallback:       cfg.InTerminal(cfg.Commands.NetworkSettings),
		BluetoothFallback:     cfg.Commands.BluetoothManager,
	}
}

// Executor runs actions against a Mutator.
type Executor struct {
	mutator  Mutator
	settings Settings
}

// NewExecutor creates an Executor.
func NewExecutor(mutator Mutator, settings Settings) *Executor {
	return &Executor{
		mutator:  mutator,
		settings: settings,
	}
}

var (
	rebuild  = Outcome{Rebuild: true}
	closing  = Outcome{Close: true}
	navigate = Outcome{Rebuild: true, CollapseAll: true}
)

// Run performs a and reports what the panel should do next. Mutation
// failures are logged; in-panel actions still rebuild so the panel shows
// the real post-attempt state. Unknown kinds and actions missing their
// target are no-ops.
func (e *Executor) Run(ctx context.Context, a Action) Outcome {
	outcome, err := e.dispatch(ctx, a)
	logging.LogAction(string(a.Kind), a.Target, err, outcome.String())
	return outcome
}

func (e *Executor) dispatch(ctx context.Context, a Action) (Outcome, error) {
	m := e.mutator

	switch a.Kind {
	case KindRefresh:
		return rebuild, nil

	case KindLaunch:
		if a.Target == "" {
			return Outcome{}, nil
		}
		return closing, m.Launch(a.Target)

	case KindShell:
		if a.Target == "" {
			return Outcome{}, nil
		}
		return rebuild, m.RunShell(ctx, a.Target)

	case KindWiFiRadio:
		return rebuild, m.SetWiFiRadio(ctx, a.On)
	case KindBluetoothPower:
		return rebuild, m.SetBluetoothPower(ctx, a.On)
	case KindAirplaneMode:
		return rebuild, m.SetAirplaneMode(ctx, a.On)
	case KindDarkStyle:
		return rebuild, m.SetDarkStyle(ctx, a.On)
	case KindNightLight:
		if a.On {
			return rebuild, m.StartNightLight(e.settings.NightLightTemperature)
		}
		return rebuild, m.StopNightLight(ctx)

	case KindVolume:
		return rebuild, m.SetVolume(ctx, a.Level)
	case KindBrightness:
		return rebuild, m.SetBrightness(ctx, a.Level)
	}

	// The remaining kinds act on an identified item.
	if a.Target == "" {
		return Outcome{}, nil
	}

	switch a.Kind {
	case KindPowerProfile:
		return Outcome{Rebuild: true, Collapse: a.Module}, m.SetPowerProfile(ctx, a.Target)

	case KindConnectWiFi:
		err := m.ConnectWiFi(ctx, a.Target)
		if needsCredentials(err) && e.settings.NetworkFallback != "" {
			return closing, errors.Join(err, m.Launch(e.settings.NetworkFallback))
		}
		return navigate, err

	case KindConnectionUp:
		return navigate, m.ConnectionUp(ctx, a.Target)

	case KindDisconnectNetwork:
		return rebuild, m.ConnectionDown(ctx, a.Target)

	case KindConnectBluetooth:
		err := m.ConnectBluetooth(ctx, a.Target)
		if err != nil && e.settings.BluetoothFallback != "" {
			return closing, errors.Join(err, m.Launch(e.settings.BluetoothFallback))
		}
		return navigate, err

	case KindDisconnectBluetooth:
		return rebuild, m.DisconnectBluetooth(ctx, a.Target)
	}

	return Outcome{}, nil
}

var credentialHints = []string{"password", "secret", "key", "authentication"}

// needsCredentials reports whether a Wi-Fi connect failure should be handed
// to the interactive network tool: it timed out waiting for an agent, or
// NetworkManager complained about missing secrets.
func needsCredentials(err error) bool {
	if err == nil {
		return false
	}

	var timeoutErr *sysexec.TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}

	var execErr *sysexec.ExecutionError
	if errors.As(err, &execErr) {
		stderr := strings.ToLower(execErr.Stderr)
		for _, hint := range credentialHints {
			if strings.Contains(stderr, hint) {
				return true
			}
		}
	}
	return false
}
