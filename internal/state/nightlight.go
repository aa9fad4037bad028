package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/muurk/quickpanel/internal/logging"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// ProcessTable finds and terminates processes by executable name.
type ProcessTable interface {
	Find(ctx context.Context, name string) ([]int32, error)
	Terminate(ctx context.Context, pid int32) error
}

// SystemProcesses is the ProcessTable backed by gopsutil.
type SystemProcesses struct{}

// Find returns the pids of processes whose name equals name.
func (SystemProcesses) Find(ctx context.Context, name string) ([]int32, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var pids []int32
	for _, proc := range procs {
		// Processes can exit between listing and inspection
		procName, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if procName == name {
			pids = append(pids, proc.Pid)
		}
	}
	return pids, nil
}

// Terminate sends SIGTERM to pid.
func (SystemProcesses) Terminate(ctx context.Context, pid int32) error {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return proc.TerminateWithContext(ctx)
}

// NightLightRunning reports whether the night-light helper is running.
// Default: false.
func (p *Provider) NightLightRunning(ctx context.Context) bool {
	return lookup(ctx, "night-light", false, func(ctx context.Context) (bool, error) {
		if p.opts.NightLightProcess == "" {
			return false, errors.New("no night-light process configured")
		}
		ctx, cancel := context.WithTimeout(ctx, p.opts.QueryTimeout)
		defer cancel()

		pids, err := p.procs.Find(ctx, p.opts.NightLightProcess)
		if err != nil {
			return false, err
		}
		return len(pids) > 0, nil
	})
}

// StartNightLight launches the helper with the given color temperature.
func (p *Provider) StartNightLight(temperature int) error {
	if p.opts.NightLightProcess == "" {
		return errors.New("no night-light process configured")
	}
	return p.Launch(p.opts.NightLightProcess + " --temperature " + strconv.Itoa(temperature))
}

// StopNightLight terminates every running helper process.
func (p *Provider) StopNightLight(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.opts.ActionTimeout)
	defer cancel()

	pids, err := p.procs.Find(ctx, p.opts.NightLightProcess)
	if err != nil {
		return err
	}

	var errs []error
	for _, pid := range pids {
		if err := p.procs.Terminate(ctx, pid); err != nil {
			logging.Warn("failed to stop night light",
				zap.Int32("pid", pid),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
