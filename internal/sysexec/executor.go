package sysexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner is the process boundary used by the state provider and the action
// executor. Tests substitute sysexectest.Runner.
type Runner interface {
	// Run executes name with args and waits for it, killing it after timeout.
	// A non-nil Result is returned whenever the process started.
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*Result, error)

	// Start launches a shell command line in the background and returns
	// once it has started.
	Start(command string) error
}

// pipeGrace bounds how long Run keeps reading output after the process
// exits. Commands that fork a background helper (wl-copy, for one) leave it
// holding stdout open.
const pipeGrace = 200 * time.Millisecond

// Executor is the Runner backed by os/exec.
type Executor struct {
	shell  string
	logger *zap.Logger
}

// NewExecutor creates an Executor that runs detached commands through sh.
func NewExecutor(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		shell:  "sh",
		logger: logger,
	}
}

// Run implements Runner.
func (e *Executor) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*Result, error) {
	commandLine := formatCommand(name, args)

	if _, err := exec.LookPath(name); err != nil {
		return nil, &NotFoundError{Tool: name, Err: err}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, name, args...)
	killGroupOnCancel(cmd)
	cmd.WaitDelay = pipeGrace
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()
	// The process itself succeeded; only a leftover child kept the pipes open.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		err = nil
	}
	result := &Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	e.logger.Debug("command finished",
		zap.String("command", commandLine),
		zap.Duration("duration", result.Duration),
		zap.Int("exit_code", result.ExitCode),
		zap.Int("stdout_size", len(result.Stdout)),
		zap.String("stderr", result.Stderr),
	)

	if err == nil {
		return result, nil
	}
	if timeoutCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return result, &TimeoutError{Command: commandLine, Timeout: timeout.String()}
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, &ExecutionError{
			Command:  commandLine,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}
	return result, &ExecutionError{
		Command:  commandLine,
		ExitCode: result.ExitCode,
		Stderr:   result.Stderr,
		Err:      err,
	}
}

// Start implements Runner. The child gets its own session so it survives
// the terminal that hosts the panel closing.
func (e *Executor) Start(command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("empty command")
	}

	cmd := exec.Command(e.shell, "-c", command)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return &NotFoundError{Tool: e.shell, Err: err}
		}
		return fmt.Errorf("failed to start %q: %w", command, err)
	}

	e.logger.Info("launched detached command",
		zap.String("command", command),
		zap.Int("pid", cmd.Process.Pid),
	)

	// Reap the child so it does not linger as a zombie while the panel runs.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func formatCommand(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
