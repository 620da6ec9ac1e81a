// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/volley/internal/commandinpath"
	"github.com/matt-FFFFFF/volley/internal/ctxlog"
	"github.com/matt-FFFFFF/volley/internal/progress"
)

var _ Runnable = (*SerialBatch)(nil)

// SerialBatch runs its commands one at a time, in order.
//
// Before each command the executable is looked up on PATH; a missing
// executable is reported as ErrCommandNotFound without starting a process.
type SerialBatch struct {
	Label    string
	Commands []*OSCommand
	Policy   ErrorPolicy
	Reporter progress.Reporter
	// LiveOutput enables EventOutput reports while a command runs.
	LiveOutput bool
	// Lookup resolves an executable name, commandinpath.Find when nil.
	Lookup func(name string) (string, error)
}

// GetLabel returns the label of the batch.
func (b *SerialBatch) GetLabel() string {
	return b.Label
}

// Run implements the Runnable interface for SerialBatch.
func (b *SerialBatch) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).With("runnableType", "SerialBatch", "label", b.Label, "policy", b.Policy.String())
	r := reporterOrNull(b.Reporter)

	lookup := b.Lookup
	if lookup == nil {
		lookup = commandinpath.Find
	}

	r.Report(progress.NewEvent(-1, b.Label, progress.EventBatchStarted, progress.EventData{
		Total: len(b.Commands),
		Mode:  ModeSequential.String(),
	}))

	results := make(Results, 0, len(b.Commands))

	for i, cmd := range b.Commands {
		if ctx.Err() != nil {
			logger.Info("context done, not starting remaining commands", "remaining", len(b.Commands)-i)
			break
		}

		r.Report(progress.NewEvent(i, cmd.Label, progress.EventStarted, progress.EventData{}))

		var res *Result

		if cmd.Executable != "" && cmd.buildErr == nil {
			if _, err := lookup(cmd.Executable); err != nil {
				logger.Debug("executable not found", "executable", cmd.Executable, "error", err)
				res = startFailure(cmd, fmt.Errorf("%w: %s", ErrCommandNotFound, cmd.Executable))
			}
		}

		if res == nil {
			res = cmd.run(ctx, outputReporter(b.LiveOutput, r, i, cmd.Label))
		}

		results = append(results, res)
		reportResult(r, i, res)

		if b.Policy.ShouldStop(res) {
			logger.Info("stopping after failed command", "index", i, "remaining", len(b.Commands)-i-1)
			r.Report(progress.NewEvent(i, cmd.Label, progress.EventAborted, progress.EventData{
				Message: fmt.Sprintf("stopping: %q failed and %s is set", cmd.Label, StopOnError),
			}))

			break
		}
	}

	res := batchResult(b.Label, results)
	reportBatchCompleted(r, b.Label, res)

	return res
}
