// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the volley command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/volley"
	"github.com/matt-FFFFFF/volley/cmd/volley/execute"
	"github.com/matt-FFFFFF/volley/internal/ctxlog"
	"github.com/matt-FFFFFF/volley/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// exitUsage is used when the command line itself is invalid, e.g. conflicting flags.
const exitUsage = 2

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		execute.ExecuteCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "volley",
	Description: `Volley runs a batch of shell commands, one after another or all at once,
and prints a styled panel with the result of each. A run can be gated on a file
or directory having been modified recently.`,
	Usage:     `volley execute "make build" "make test"`,
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	ctx = ctxlog.With(ctx, "runID", uuid.NewString())

	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", volley.Version, volley.Commit)

	// Exit codes of the action are handled by the cli framework.
	err := rootCmd.Run(ctx, os.Args)

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(exitUsage)
	}

	ctxlog.Debug(ctx, "command completed successfully")
}
