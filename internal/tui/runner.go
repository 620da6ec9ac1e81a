// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/volley/internal/ctxlog"
	"github.com/matt-FFFFFF/volley/internal/progress"
	"github.com/matt-FFFFFF/volley/internal/runbatch"
	"golang.org/x/sync/errgroup"
)

// ErrQuit is returned when the user closes the view before the batch finished.
var ErrQuit = errors.New("live view closed before the commands finished")

var _ progress.Reporter = (*Reporter)(nil)

// Reporter implements progress.Reporter and forwards events to the TUI.
type Reporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// Report implements progress.Reporter.
func (r *Reporter) Report(event progress.Event) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.closed || r.program == nil {
		return
	}

	// returns immediately once the program has exited
	r.program.Send(ProgressEventMsg{Event: event})
}

// Close implements progress.Reporter.
func (r *Reporter) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.closed = true
}

// Runner manages the TUI program and the batch it displays.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *Reporter
}

// NewRunner creates a runner for a batch of the given command lines.
// The view is drawn on stderr unless opts say otherwise.
func NewRunner(ctx context.Context, labels []string, opts ...tea.ProgramOption) *Runner {
	model := NewModel(labels)

	options := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	}, opts...)

	program := tea.NewProgram(model, options...)

	return &Runner{
		model:    model,
		program:  program,
		reporter: &Reporter{program: program},
	}
}

// Reporter returns the progress reporter the batch must report into.
func (r *Runner) Reporter() progress.Reporter {
	return r.reporter
}

// Run starts the TUI and run side by side and returns once both have finished.
// Closing the view early cancels the context passed to run.
func (r *Runner) Run(ctx context.Context, run func(context.Context) runbatch.Results) (runbatch.Results, error) {
	g, gctx := errgroup.WithContext(ctx)

	var results runbatch.Results

	g.Go(func() error {
		_, err := r.program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}

		if r.model.Quitting() && !r.model.Completed() {
			ctxlog.Warn(ctx, "live view closed, stopping the batch")
			return ErrQuit
		}

		return nil
	})

	g.Go(func() error {
		defer r.reporter.Close()

		results = run(gctx)

		return nil
	})

	err := g.Wait()

	return results, err
}
