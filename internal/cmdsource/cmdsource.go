// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/volley/internal/ctxlog"
	"github.com/spf13/afero"
)

var (
	// ErrEmptyInput is returned when neither the arguments nor the file yield a command.
	ErrEmptyInput = errors.New("no commands provided")
	// ErrNotFound is returned when a local command file does not exist.
	ErrNotFound = errors.New("command file not found")
	// ErrRead is returned when a local command file exists but cannot be read.
	ErrRead = errors.New("could not read command file")
	// ErrFetch is returned when a remote command file cannot be retrieved.
	ErrFetch = errors.New("could not fetch command file")
	// ErrInvalidYAML is returned when a YAML command file cannot be parsed.
	ErrInvalidYAML = errors.New("invalid YAML command file")
)

// FsFactory returns the filesystem local command files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// yamlFile is the document accepted in .yaml and .yml command files.
type yamlFile struct {
	Commands []string `yaml:"commands"`
}

// Resolve returns the commands to run.
//
// When fromFile is set it takes precedence and args are ignored. Commands are
// trimmed and blank ones dropped; ErrEmptyInput is returned when none remain.
func Resolve(ctx context.Context, args []string, fromFile string) ([]string, error) {
	if fromFile == "" {
		cmds := clean(args)
		if len(cmds) == 0 {
			return nil, ErrEmptyInput
		}

		return cmds, nil
	}

	if len(args) > 0 {
		ctxlog.Warn(ctx, "positional commands ignored because a command file is set",
			"file", fromFile, "ignored", len(args))
	}

	data, err := read(ctx, fromFile)
	if err != nil {
		return nil, err
	}

	var cmds []string

	if isYAML(fromFile) {
		cmds, err = parseYAML(data)
		if err != nil {
			return nil, err
		}
	} else {
		cmds = parseLines(data)
	}

	ctxlog.Debug(ctx, "commands read from file", "file", fromFile, "count", len(cmds))

	if len(cmds) == 0 {
		return nil, fmt.Errorf("%w: %s contains no commands", ErrEmptyInput, fromFile)
	}

	return cmds, nil
}

func read(ctx context.Context, src string) ([]byte, error) {
	if !isLocal(src) {
		return fetch(ctx, src)
	}

	data, err := afero.ReadFile(FsFactory(), src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, src)
		}

		return nil, errors.Join(ErrRead, err)
	}

	return data, nil
}

func parseLines(data []byte) []string {
	var res []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)

	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			res = append(res, line)
		}
	}

	return res
}

func parseYAML(data []byte) ([]string, error) {
	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}

	return clean(doc.Commands), nil
}

func clean(cmds []string) []string {
	res := make([]string, 0, len(cmds))

	for _, c := range cmds {
		if c = strings.TrimSpace(c); c != "" {
			res = append(res, c)
		}
	}

	return res
}

func isYAML(name string) bool {
	// drop any go-getter query before looking at the extension
	name, _, _ = strings.Cut(name, "?")

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
