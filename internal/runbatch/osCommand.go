// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/matt-FFFFFF/volley/internal/ctxlog"
	"github.com/matt-FFFFFF/volley/internal/lastline"
)

const (
	maxBufferSize = 8 * 1024 * 1024 // 8MB
	// waitDelay bounds how long Wait drains output after a cancelled process
	// was killed, in case a grandchild still holds the pipes open.
	waitDelay = 2 * time.Second
	// outputInterval is how often a running command's latest output line is reported.
	outputInterval = 500 * time.Millisecond
)

var _ Runnable = (*OSCommand)(nil)

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrCancelled is returned when the process was killed because the context was cancelled.
	ErrCancelled = errors.New("command cancelled")
)

// OSCommand is a single command of a batch.
type OSCommand struct {
	Label      string            // The command line as the user wrote it
	Path       string            // Executable to start, looked up on PATH when it has no separator
	Args       []string          // Arguments, not including the executable
	Executable string            // Name checked by the sequential pre-check, empty to skip it
	Cwd        string            // Working directory, empty for the current one
	Env        map[string]string // Extra environment variables
	buildErr   error             // Set when the command line could not be turned into a process
}

// GetLabel returns the label of the command.
func (c *OSCommand) GetLabel() string {
	if c.Label == "" {
		return "Command"
	}

	return c.Label
}

// OutputFunc receives the latest complete line of output of a running command.
type OutputFunc func(line string)

// Process is a started OSCommand.
type Process struct {
	cmd      *exec.Cmd
	label    string
	stdout   *cappedBuffer
	stderr   *cappedBuffer
	started  time.Time
	stopPoll chan struct{}
	polling  sync.WaitGroup
}

// Start launches the command without waiting for it.
// The returned error wraps ErrCouldNotStartProcess.
func (c *OSCommand) Start(ctx context.Context) (*Process, error) {
	return c.start(ctx, nil)
}

func (c *OSCommand) start(ctx context.Context, onOutput OutputFunc) (*Process, error) {
	if c.buildErr != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, c.buildErr)
	}

	logger := ctxlog.Logger(ctx).With("runnableType", "OSCommand", "label", c.Label)
	logger.Debug("command info", "path", c.Path, "args", c.Args, "cwd", c.Cwd)

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Cwd
	cmd.WaitDelay = waitDelay

	if len(c.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	p := &Process{
		cmd:    cmd,
		label:  c.Label,
		stdout: newCappedBuffer(maxBufferSize),
		stderr: newCappedBuffer(maxBufferSize),
	}
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	var outLines, errLines *lastline.Writer
	if onOutput != nil {
		outLines = lastline.New(p.stdout)
		errLines = lastline.New(p.stderr)
		cmd.Stdout = outLines
		cmd.Stderr = errLines
	}

	if err := cmd.Start(); err != nil {
		logger.Debug("process could not start", "error", err)
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	p.started = time.Now()

	if onOutput != nil {
		p.stopPoll = make(chan struct{})
		p.polling.Add(1)

		go p.pollOutput(onOutput, outLines, errLines)
	}

	logger.Debug("process started", "pid", cmd.Process.Pid)

	return p, nil
}

// pollOutput reports the most recently changed output line every outputInterval
// until Wait stops it.
func (p *Process) pollOutput(onOutput OutputFunc, writers ...*lastline.Writer) {
	defer p.polling.Done()

	ticker := time.NewTicker(outputInterval)
	defer ticker.Stop()

	seen := make([]uint64, len(writers))

	for {
		select {
		case <-p.stopPoll:
			return
		case <-ticker.C:
			for i, w := range writers {
				if n := w.Lines(); n != seen[i] {
					seen[i] = n
					onOutput(w.LastLine(0))
				}
			}
		}
	}
}

// Wait blocks until the process exits and its output is drained.
func (p *Process) Wait(ctx context.Context) *Result {
	err := p.cmd.Wait()

	if p.stopPoll != nil {
		close(p.stopPoll)
		p.polling.Wait()
	}

	res := &Result{
		Label:    p.label,
		StdOut:   p.stdout.Bytes(),
		StdErr:   p.stderr.Bytes(),
		Duration: time.Since(p.started),
	}

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			// killed by a signal
			res.Error = err
		}
	case errors.Is(err, exec.ErrWaitDelay):
		// exited, but a background grandchild kept the output pipes open
		res.ExitCode = p.cmd.ProcessState.ExitCode()
		ctxlog.Debug(ctx, "output pipes closed after wait delay", "label", p.label)
	default:
		res.ExitCode = -1
		res.Error = err
	}

	if ctx.Err() != nil && res.ExitCode != 0 {
		res.Error = errors.Join(ErrCancelled, ctx.Err())
		res.ExitCode = -1
	}

	if p.stdout.Overflowed() || p.stderr.Overflowed() {
		res.Error = errors.Join(res.Error, ErrBufferOverflow)
	}

	res.Status = ResultStatusSuccess
	if res.Failed() {
		res.Status = ResultStatusError
	}

	ctxlog.Debug(ctx, "process finished",
		"label", p.label,
		"exitCode", res.ExitCode,
		"stdoutBytes", len(res.StdOut),
		"stderrBytes", len(res.StdErr))

	return res
}

// Run implements the Runnable interface for OSCommand.
func (c *OSCommand) Run(ctx context.Context) Results {
	return Results{c.run(ctx, nil)}
}

func (c *OSCommand) run(ctx context.Context, onOutput OutputFunc) *Result {
	p, err := c.start(ctx, onOutput)
	if err != nil {
		return startFailure(c, err)
	}

	return p.Wait(ctx)
}

func startFailure(c *OSCommand, err error) *Result {
	return &Result{
		Label:    c.Label,
		ExitCode: -1,
		Error:    err,
		Status:   ResultStatusError,
	}
}
