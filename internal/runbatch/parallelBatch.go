// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/matt-FFFFFF/volley/internal/ctxlog"
	"github.com/matt-FFFFFF/volley/internal/progress"
)

var _ Runnable = (*ParallelBatch)(nil)

// ParallelBatch starts every command back to back, without a concurrency
// limit, then waits for each one in launch order. Results are reported in
// launch order even when a later command exits first.
//
// Unlike SerialBatch there is no executable pre-check. In shell mode the shell
// reports an unknown command through exit status 127 and stderr. In argument
// mode a launch that fails because the executable does not exist gets the same
// treatment: a result with exit code 127, reported in its place during the join.
//
// Any other launch failure is reported immediately. With StopOnError it stops
// further launches, but commands that are already running are still awaited
// and reported.
type ParallelBatch struct {
	Label    string
	Commands []*OSCommand
	Policy   ErrorPolicy
	Reporter progress.Reporter
	// LiveOutput enables EventOutput reports while commands run.
	LiveOutput bool
}

// GetLabel returns the label of the batch.
func (b *ParallelBatch) GetLabel() string {
	return b.Label
}

// exitCommandNotFound is the status a POSIX shell uses for an unknown command.
const exitCommandNotFound = 127

type launched struct {
	index int
	cmd   *OSCommand
	ps    *Process
	res   *Result // set instead of ps when the executable was not found
}

// Run implements the Runnable interface for ParallelBatch.
func (b *ParallelBatch) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).With("runnableType", "ParallelBatch", "label", b.Label, "policy", b.Policy.String())
	r := reporterOrNull(b.Reporter)

	r.Report(progress.NewEvent(-1, b.Label, progress.EventBatchStarted, progress.EventData{
		Total: len(b.Commands),
		Mode:  ModeParallel.String(),
	}))

	results := make(Results, 0, len(b.Commands))
	running := make([]launched, 0, len(b.Commands))

	for i, cmd := range b.Commands {
		ps, err := cmd.start(ctx, outputReporter(b.LiveOutput, r, i, cmd.Label))
		if err != nil && isNotFound(err) {
			logger.Debug("executable not found", "index", i, "error", err)
			r.Report(progress.NewEvent(i, cmd.Label, progress.EventStarted, progress.EventData{}))
			running = append(running, launched{index: i, cmd: cmd, res: notFoundResult(cmd)})

			continue
		}

		if err != nil {
			res := startFailure(cmd, err)
			results = append(results, res)
			reportResult(r, i, res)

			if b.Policy.ShouldStop(res) {
				logger.Info("launch failed, not starting remaining commands",
					"index", i, "remaining", len(b.Commands)-i-1, "running", len(running))
				r.Report(progress.NewEvent(i, cmd.Label, progress.EventAborted, progress.EventData{
					Message: fmt.Sprintf("stopping: %q could not be started and %s is set", cmd.Label, StopOnError),
				}))

				break
			}

			continue
		}

		r.Report(progress.NewEvent(i, cmd.Label, progress.EventStarted, progress.EventData{}))
		running = append(running, launched{index: i, cmd: cmd, ps: ps})
	}

	logger.Debug("all commands launched", "running", len(running))

	for _, l := range running {
		res := l.res
		if res == nil {
			res = l.ps.Wait(ctx)
		}

		results = append(results, res)
		reportResult(r, l.index, res)
	}

	res := batchResult(b.Label, results)
	reportBatchCompleted(r, b.Label, res)

	return res
}

// isNotFound reports whether a launch failed because the executable does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

func notFoundResult(c *OSCommand) *Result {
	return &Result{
		Label:    c.Label,
		ExitCode: exitCommandNotFound,
		Error:    fmt.Errorf("%w: %s", ErrCommandNotFound, c.Path),
		Status:   ResultStatusError,
	}
}
