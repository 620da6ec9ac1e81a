// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execute implements the execute subcommand, which runs a batch of
// commands and prints a panel per result.
package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/volley/internal/cmdsource"
	"github.com/matt-FFFFFF/volley/internal/ctxlog"
	"github.com/matt-FFFFFF/volley/internal/precheck"
	"github.com/matt-FFFFFF/volley/internal/progress"
	"github.com/matt-FFFFFF/volley/internal/report"
	"github.com/matt-FFFFFF/volley/internal/runbatch"
	"github.com/matt-FFFFFF/volley/internal/tui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Exit codes of the execute command.
const (
	ExitCommandFailed  = 1
	ExitInputError     = 2
	ExitPrecheckFailed = 3
)

const (
	cliExitStr        = ""
	batchLabel        = "volley"
	tuiUnavailableMsg = "the live view needs a terminal on stderr, continuing without it"
)

// IsTerminal reports whether the live view can be drawn.
var IsTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// ExecuteCmd runs one or more commands.
var ExecuteCmd = NewCommand()

// NewCommand creates the execute command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "execute",
		Usage:     "Run one or more commands and show their results",
		ArgsUsage: "[COMMAND...]",
		Description: `Run one or more commands, sequentially or in parallel, and print a panel
with the output of each one followed by a summary.

Each argument is one command line:

  volley execute "ls -l" "pwd" "echo hello"
  volley execute --parallel "sleep 2" "echo hello"
  volley execute --check-file data.csv --check-minutes 5 "python load.py"
  volley execute --from-file commands.txt
  volley execute --continue-on-error "make lint" "make test"
  volley execute --shell "grep -c TODO *.go | sort"

By default a command line is split into words using shell quoting rules and the
executable is started directly. Use --shell to pass the text to the shell instead.

Exit status is 0 when every command succeeded, 1 when any failed, 2 for invalid
input and 3 when the --check-file or --check-dir condition is not met.`,
		Flags:                  flags(),
		MutuallyExclusiveFlags: mutuallyExclusiveFlags(),
		Action:                 actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running execute command")

	opts := optionsFromCommand(cmd)
	console := report.NewConsole(cmd.Root().Writer)

	lines, err := cmdsource.Resolve(ctx, cmd.Args().Slice(), opts.fromFile)
	if err != nil {
		logger.Debug("could not resolve commands", "error", err)
		console.Error(err)

		return cli.Exit(cliExitStr, ExitInputError)
	}

	console.Banner(len(lines), opts.mode.String())

	if opts.check != nil {
		ok, msg := precheck.Check(opts.check.Path, opts.check.Window, opts.check.Kind)
		console.Precheck(opts.check.Path, ok, msg)

		if !ok {
			logger.Info("precondition not satisfied, no command was run", "path", opts.check.Path)
			return cli.Exit(cliExitStr, ExitPrecheckFailed)
		}
	}

	if opts.tui && !IsTerminal() {
		logger.Warn(tuiUnavailableMsg)

		opts.tui = false
	}

	var res runbatch.Results

	if opts.tui {
		res, err = runWithTUI(ctx, cmd, lines, opts, console)
		if errors.Is(err, tui.ErrQuit) {
			console.Error(err)
			return cli.Exit(cliExitStr, ExitCommandFailed)
		}

		if err != nil {
			logger.Error(fmt.Sprintf("TUI execution error: %s", err.Error()))
		}
	} else {
		res = runbatch.New(ctx, lines, runbatch.Options{
			Label:    batchLabel,
			Mode:     opts.mode,
			Policy:   opts.policy,
			Shell:    opts.shell,
			Reporter: console,
		}).Run(ctx)
	}

	console.Summary(res)

	if err := res.Err(); err != nil {
		logger.Info("some commands failed", "error", err)
		return cli.Exit(cliExitStr, ExitCommandFailed)
	}

	if ctx.Err() != nil {
		return cli.Exit(cliExitStr, ExitCommandFailed)
	}

	return nil
}

// runWithTUI runs the batch behind the live view, then replays its events to
// the console so the result panels are printed once the view has exited.
func runWithTUI(
	ctx context.Context, cmd *cli.Command, lines []string, opts options, console *report.Console,
) (runbatch.Results, error) {
	buf := new(bytes.Buffer)
	tuiCtx := ctxlog.NewForTUI(ctx, buf)

	defer buf.WriteTo(cmd.Root().ErrWriter) //nolint:errcheck

	rec := &progress.Recorder{}
	runner := tui.NewRunner(tuiCtx, lines)

	batch := runbatch.New(tuiCtx, lines, runbatch.Options{
		Label:      batchLabel,
		Mode:       opts.mode,
		Policy:     opts.policy,
		Shell:      opts.shell,
		Reporter:   progress.Multi(runner.Reporter(), rec),
		LiveOutput: true,
	})

	res, err := runner.Run(tuiCtx, batch.Run)

	for _, e := range rec.Events() {
		console.Report(e)
	}

	return res, err
}
