// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandinpath resolves the executable of a command line on the system PATH.
package commandinpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/afero"
)

const goosWindows = "windows"

var (
	// ErrCommandNotFound is returned when no executable matching the name exists.
	ErrCommandNotFound = errors.New("command not found")
	// ErrEmptyCommand is returned when a command line has no tokens.
	ErrEmptyCommand = errors.New("empty command")
	// ErrParseCommand is returned when a command line cannot be split into words.
	ErrParseCommand = errors.New("cannot parse command line")
)

// FsFactory returns the filesystem used for lookups. Tests replace it with an in-memory one.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// FirstToken returns the executable name of commandLine using POSIX shell word rules.
func FirstToken(commandLine string) (string, error) {
	words, err := shlex.Split(commandLine)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParseCommand, err)
	}

	if len(words) == 0 {
		return "", ErrEmptyCommand
	}

	return words[0], nil
}

// Find returns the path of the executable named command.
// A name containing a path separator is checked as given, otherwise each
// directory of PATH is searched in order.
func Find(command string) (string, error) {
	if command == "" {
		return "", ErrEmptyCommand
	}

	fs := FsFactory()

	if strings.ContainsRune(command, '/') || strings.ContainsRune(command, filepath.Separator) {
		if p, ok := executable(fs, command); ok {
			return p, nil
		}

		return "", fmt.Errorf("%w: %s", ErrCommandNotFound, command)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}

		if p, ok := executable(fs, filepath.Join(dir, command)); ok {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, command)
}

// Resolve combines FirstToken and Find.
func Resolve(commandLine string) (string, error) {
	name, err := FirstToken(commandLine)
	if err != nil {
		return "", err
	}

	return Find(name)
}

func executable(fs afero.Fs, path string) (string, bool) {
	for _, candidate := range candidates(path) {
		info, err := fs.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		if runtime.GOOS != goosWindows && info.Mode()&0o111 == 0 {
			continue
		}

		return candidate, true
	}

	return "", false
}

// candidates adds the PATHEXT extensions on Windows when path has none.
func candidates(path string) []string {
	if runtime.GOOS != goosWindows || filepath.Ext(path) != "" {
		return []string{path}
	}

	exts := os.Getenv("PATHEXT")
	if exts == "" {
		exts = ".com;.exe;.bat;.cmd"
	}

	res := []string{path}
	for _, ext := range strings.Split(strings.ToLower(exts), ";") {
		if ext != "" {
			res = append(res, path+ext)
		}
	}

	return res
}
