// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execute

import (
	"time"

	"github.com/matt-FFFFFF/volley/internal/precheck"
	"github.com/matt-FFFFFF/volley/internal/runbatch"
	"github.com/urfave/cli/v3"
)

const (
	sequentialFlag      = "sequential"
	parallelFlag        = "parallel"
	checkFileFlag       = "check-file"
	checkDirFlag        = "check-dir"
	checkMinutesFlag    = "check-minutes"
	fromFileFlag        = "from-file"
	continueOnErrorFlag = "continue-on-error"
	stopOnErrorFlag     = "stop-on-error"
	shellFlag           = "shell"
	tuiFlag             = "tui"
	checkMinutesDefault = 5
)

// options is the parsed form of the execute flags.
type options struct {
	mode     runbatch.Mode
	policy   runbatch.ErrorPolicy
	check    *precheck.Spec
	fromFile string
	shell    bool
	tui      bool
}

func optionsFromCommand(cmd *cli.Command) options {
	opts := options{
		mode:     runbatch.ModeSequential,
		policy:   runbatch.StopOnError,
		fromFile: cmd.String(fromFileFlag),
		shell:    cmd.Bool(shellFlag),
		tui:      cmd.Bool(tuiFlag),
	}

	if cmd.Bool(parallelFlag) {
		opts.mode = runbatch.ModeParallel
	}

	if cmd.Bool(continueOnErrorFlag) {
		opts.policy = runbatch.ContinueOnError
	}

	window := time.Duration(cmd.Int(checkMinutesFlag)) * time.Minute

	switch {
	case cmd.String(checkFileFlag) != "":
		opts.check = &precheck.Spec{Path: cmd.String(checkFileFlag), Window: window, Kind: precheck.KindFile}
	case cmd.String(checkDirFlag) != "":
		opts.check = &precheck.Spec{Path: cmd.String(checkDirFlag), Window: window, Kind: precheck.KindDirectory}
	}

	return opts
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  checkMinutesFlag,
			Usage: "The checked path must have been modified within this many minutes",
			Value: checkMinutesDefault,
		},
		&cli.StringFlag{
			Name:      fromFileFlag,
			Aliases:   []string{"f"},
			TakesFile: true,
			Usage: "Read commands from a file, one per line, or from the `commands` list of a .yaml file. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
				"Positional commands are ignored when set.",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name: shellFlag,
			Usage: "Pass each command verbatim to $SHELL -c (cmd.exe /C on Windows). " +
				"The command text is trusted: pipes, globs and variables are expanded by the shell. " +
				"Without it commands are split into words and executed directly.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"t", "interactive"},
			Usage:       "Show a live view of the running commands. Ignored when stderr is not a terminal",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	}
}

func mutuallyExclusiveFlags() []cli.MutuallyExclusiveFlags {
	return []cli.MutuallyExclusiveFlags{
		{
			Flags: [][]cli.Flag{
				{&cli.BoolFlag{Name: sequentialFlag, Usage: "Run the commands one at a time, in order (default)"}},
				{&cli.BoolFlag{Name: parallelFlag, Usage: "Start every command at once and report them in order"}},
			},
		},
		{
			Flags: [][]cli.Flag{
				{&cli.StringFlag{Name: checkFileFlag, TakesFile: true, Usage: "Only run when this file was recently modified"}},
				{&cli.StringFlag{Name: checkDirFlag, TakesFile: true, Usage: "Only run when this directory was recently modified"}},
			},
		},
		{
			Flags: [][]cli.Flag{
				{&cli.BoolFlag{Name: continueOnErrorFlag, Usage: "Keep going after a command fails"}},
				{&cli.BoolFlag{Name: stopOnErrorFlag, Usage: "Stop at the first failed command (default)"}},
			},
		},
	}
}
