// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/google/shlex"
	"github.com/matt-FFFFFF/volley/internal/commandinpath"
	"github.com/matt-FFFFFF/volley/internal/ctxlog"
)

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"
	commandSwitchUnix    = "-c"
	winSystem32          = "System32"
	cmdExe               = "cmd.exe"
	binSh                = "/bin/sh"
	winSystemRootEnv     = "SystemRoot"
)

var (
	// ErrCommandNotFound is reported by the sequential pre-check when the
	// executable is not on PATH.
	ErrCommandNotFound = commandinpath.ErrCommandNotFound
	// ErrEmptyCommand is returned for a blank command line.
	ErrEmptyCommand = errors.New("empty command")
)

// NewShellCommand returns a command that passes commandLine verbatim to the
// user's shell ($SHELL -c, /bin/sh -c, or cmd.exe /C on Windows).
//
// The command line is trusted: quoting, globbing, pipes and variable expansion
// are all performed by the shell.
func NewShellCommand(ctx context.Context, commandLine string) (*OSCommand, error) {
	if commandLine == "" {
		return nil, ErrEmptyCommand
	}

	sw := commandSwitchUnix
	if runtime.GOOS == goosWindows {
		sw = commandSwitchWindows
	}

	c := &OSCommand{
		Label: commandLine,
		Path:  defaultShell(ctx),
		Args:  []string{sw, commandLine},
	}

	// An unparsable line still goes to the shell, which reports the syntax error.
	if name, err := commandinpath.FirstToken(commandLine); err == nil {
		c.Executable = name
	}

	return c, nil
}

// NewArgvCommand splits commandLine into words with POSIX shell rules and
// executes the first word directly with the rest as arguments. No shell is
// involved, so pipes, redirections and expansions are passed through literally.
func NewArgvCommand(commandLine string) (*OSCommand, error) {
	if commandLine == "" {
		return nil, ErrEmptyCommand
	}

	words, err := shlex.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", commandinpath.ErrParseCommand, err)
	}

	if len(words) == 0 {
		return nil, ErrEmptyCommand
	}

	return &OSCommand{
		Label:      commandLine,
		Path:       words[0],
		Args:       words[1:],
		Executable: words[0],
	}, nil
}

// NewCommands builds one OSCommand per line. A line that cannot be built is
// kept as a command whose Start fails, so it is reported in its place.
func NewCommands(ctx context.Context, lines []string, shell bool) []*OSCommand {
	cmds := make([]*OSCommand, 0, len(lines))

	for _, line := range lines {
		var (
			c   *OSCommand
			err error
		)

		if shell {
			c, err = NewShellCommand(ctx, line)
		} else {
			c, err = NewArgvCommand(line)
		}

		if err != nil {
			ctxlog.Debug(ctx, "invalid command line", "line", line, "error", err)
			c = &OSCommand{Label: line, buildErr: err}
		}

		cmds = append(cmds, c)
	}

	return cmds
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}
