// Package sysexectest provides a scripted sysexec.Runner for tests.
package sysexectest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/muurk/quickpanel/internal/sysexec"
)

// Response is the scripted outcome of one command line.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Timeout makes the command fail with *sysexec.TimeoutError
	Timeout bool
	// Err is returned as-is when set
	Err error
}

// Runner replays scripted responses keyed by the full command line
// ("nmcli radio all"). Unknown commands fail with *sysexec.NotFoundError.
// It is safe for concurrent use.
type Runner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []string
	started   []string
	startErr  error
}

// New creates an empty Runner.
func New() *Runner {
	return &Runner{responses: make(map[string]Response)}
}

// On scripts the response for a command line and returns the Runner for chaining.
func (r *Runner) On(commandLine string, resp Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[commandLine] = resp
	return r
}

// Output scripts a successful command with the given stdout.
func (r *Runner) Output(commandLine, stdout string) *Runner {
	return r.On(commandLine, Response{Stdout: stdout})
}

// FailStart makes every Start call return err.
func (r *Runner) FailStart(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startErr = err
}

// Run implements sysexec.Runner.
func (r *Runner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*sysexec.Result, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	r.calls = append(r.calls, line)
	resp, ok := r.responses[line]
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, &sysexec.NotFoundError{Tool: name, Err: fmt.Errorf("no scripted response for %q", line)}
	}

	result := &sysexec.Result{Stdout: resp.Stdout, Stderr: resp.Stderr, ExitCode: resp.ExitCode}
	switch {
	case resp.Err != nil:
		return result, resp.Err
	case resp.Timeout:
		return result, &sysexec.TimeoutError{Command: line, Timeout: timeout.String()}
	case resp.ExitCode != 0:
		return result, &sysexec.ExecutionError{Command: line, ExitCode: resp.ExitCode, Stderr: resp.Stderr}
	}
	return result, nil
}

// Start implements sysexec.Runner.
func (r *Runner) Start(command string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return r.startErr
	}
	r.started = append(r.started, command)
	return nil
}

// Calls returns the command lines passed to Run, in order.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Called reports whether commandLine was passed to Run.
func (r *Runner) Called(commandLine string) bool {
	for _, c := range r.Calls() {
		if c == commandLine {
			return true
		}
	}
	return false
}

// Started returns the command lines passed to Start, in order.
func (r *Runner) Started() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.started...)
}
