package state

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/logging"
	"github.com/muurk/quickpanel/internal/sysexec"
	"go.uber.org/zap"
)

// Options holds the provider tunables taken from the config file.
type Options struct {
	QueryTimeout      time.Duration
	ActionTimeout     time.Duration
	BatteryPath       string
	NightLightProcess string
}

// OptionsFromConfig extracts provider options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		QueryTimeout:      cfg.Timeouts.Query.Duration,
		ActionTimeout:     cfg.Timeouts.Action.Duration,
		BatteryPath:       cfg.Battery.CapacityPath,
		NightLightProcess: cfg.NightLight.Process,
	}
}

// Provider queries and mutates host facilities through a sysexec.Runner
// and a ProcessTable.
type Provider struct {
	runner sysexec.Runner
	procs  ProcessTable
	opts   Options
}

// NewProvider creates a Provider. A nil procs uses the gopsutil process table.
func NewProvider(runner sysexec.Runner, procs ProcessTable, opts Options) *Provider {
	if procs == nil {
		procs = SystemProcesses{}
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 2 * time.Second
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 3 * time.Second
	}
	return &Provider{
		runner: runner,
		procs:  procs,
		opts:   opts,
	}
}

// Snapshot runs the summary queries and the detail queries selected by req
// concurrently. It never fails; each field holds either the live value or
// its default.
func (p *Provider) Snapshot(ctx context.Context, req Request) Snapshot {
	snap := Snapshot{Request: req}

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { snap.Network = p.NetworkStatus(ctx) })
	run(func() { snap.BluetoothPowered = p.BluetoothPowered(ctx) })
	run(func() { snap.PowerProfile = p.PowerProfile(ctx) })
	run(func() { snap.NightLight = p.NightLightRunning(ctx) })
	run(func() { snap.DarkStyle = p.DarkStyle(ctx) })
	run(func() { snap.AirplaneMode = p.AirplaneMode(ctx) })
	run(func() { snap.Volume = p.Volume(ctx) })
	run(func() { snap.Brightness = p.Brightness(ctx) })
	run(func() { snap.Battery = p.Battery(ctx) })

	if req.Has(WiFiList) {
		run(func() { snap.WiFiNetworks = p.WiFiNetworks(ctx) })
	}
	if req.Has(BluetoothList) {
		run(func() {
			snap.BluetoothDevices = mergeDevices(p.BluetoothDevices(ctx), p.BluetoothConnected(ctx), p.BluetoothKnown(ctx))
		})
	}
	if req.Has(ProfileList) {
		run(func() { snap.PowerProfiles = p.PowerProfiles(ctx) })
	}
	if req.Has(ColorValue) {
		run(func() { snap.LastColor = p.LastColor(ctx) })
	}

	wg.Wait()
	return snap
}

// lookup runs one query, converting errors and panics into def.
func lookup[T any](ctx context.Context, facility string, def T, fn func(context.Context) (T, error)) (out T) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.Error("query panicked",
				zap.String("facility", facility),
				zap.Any("panic", r),
			)
			out = def
		}
	}()

	v, err := fn(ctx)
	logging.LogQuery(facility, time.Since(start), err)
	if err != nil {
		return def
	}
	return v
}

// output runs a query command and returns its trimmed stdout.
func (p *Provider) output(ctx context.Context, name string, args ...string) (string, error) {
	result, err := p.runner.Run(ctx, p.opts.QueryTimeout, name, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// mutate runs a blocking mutation bounded by the action timeout.
func (p *Provider) mutate(ctx context.Context, name string, args ...string) error {
	_, err := p.runner.Run(ctx, p.opts.ActionTimeout, name, args...)
	if err != nil {
		logging.Warn("mutation failed",
			zap.String("command", name+" "+strings.Join(args, " ")),
			zap.Error(err),
		)
	}
	return err
}

// Launch starts a detached shell command line.
func (p *Provider) Launch(command string) error {
	if err := p.runner.Start(command); err != nil {
		return fmt.Errorf("launch %q: %w", command, err)
	}
	return nil
}

// clampPercent bounds v to 0..100.
func clampPercent(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// RunShell runs a shell command line to completion, bounded by the action
// timeout.
func (p *Provider) RunShell(ctx context.Context, command string) error {
	return p.mutate(ctx, "sh", "-c", command)
}
