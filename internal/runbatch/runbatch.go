// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"

	"github.com/matt-FFFFFF/volley/internal/progress"
)

// Options configures New.
type Options struct {
	Label    string
	Mode     Mode
	Policy   ErrorPolicy
	Shell    bool // pass command lines to the shell instead of splitting them into arguments
	Reporter progress.Reporter
	// LiveOutput reports the latest output line of running commands as
	// EventOutput. Only useful for reporters that draw running commands.
	LiveOutput bool
}

// New builds the batch for lines according to opts.
func New(ctx context.Context, lines []string, opts Options) Runnable {
	cmds := NewCommands(ctx, lines, opts.Shell)

	if opts.Mode == ModeParallel {
		return &ParallelBatch{
			Label:      opts.Label,
			Commands:   cmds,
			Policy:     opts.Policy,
			Reporter:   opts.Reporter,
			LiveOutput: opts.LiveOutput,
		}
	}

	return &SerialBatch{
		Label:      opts.Label,
		Commands:   cmds,
		Policy:     opts.Policy,
		Reporter:   opts.Reporter,
		LiveOutput: opts.LiveOutput,
	}
}

func reporterOrNull(r progress.Reporter) progress.Reporter {
	if r == nil {
		return progress.NullReporter{}
	}

	return r
}

// outputReporter returns nil unless live output is enabled, which disables output polling.
func outputReporter(enabled bool, r progress.Reporter, index int, label string) OutputFunc {
	if !enabled {
		return nil
	}

	return func(line string) {
		r.Report(progress.NewEvent(index, label, progress.EventOutput, progress.EventData{OutputLine: line}))
	}
}

func reportResult(r progress.Reporter, index int, res *Result) {
	et := progress.EventCompleted
	if res.Failed() {
		et = progress.EventFailed
	}

	r.Report(progress.NewEvent(index, res.Label, et, progress.EventData{
		ExitCode: res.ExitCode,
		Error:    res.Error,
		StdOut:   res.StdOut,
		StdErr:   res.StdErr,
	}))
}

func reportBatchCompleted(r progress.Reporter, label string, res Results) {
	r.Report(progress.NewEvent(-1, label, progress.EventBatchCompleted, progress.EventData{
		Failed: res.HasError(),
	}))
}
