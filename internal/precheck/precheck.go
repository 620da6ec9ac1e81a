// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package precheck gates a run on a file or directory that must exist, be of
// the requested kind and have been modified recently.
package precheck

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when the path does not exist.
	ErrNotFound = errors.New("path does not exist")
	// ErrTypeMismatch is returned when the path is not of the requested kind.
	ErrTypeMismatch = errors.New("path is of the wrong type")
	// ErrStale is returned when the path was modified before the window.
	ErrStale = errors.New("path was not modified recently")
	// ErrStat is returned when the path exists but cannot be inspected.
	ErrStat = errors.New("cannot stat path")
)

// FsFactory returns the filesystem the checker reads. Tests replace it with an in-memory one.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Now is the clock used to compute the window.
var Now = time.Now

// DefaultWindow is the recency window used when none is configured.
const DefaultWindow = 5 * time.Minute

// Kind selects which file types satisfy a check.
type Kind int

const (
	// KindEither accepts both files and directories.
	KindEither Kind = iota
	// KindFile accepts only regular files.
	KindFile
	// KindDirectory accepts only directories.
	KindDirectory
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindEither:
		return "either"
	default:
		return "unknown"
	}
}

// Spec describes a precondition on a path.
type Spec struct {
	Path   string
	Window time.Duration
	Kind   Kind
}

// Evaluate checks spec and returns nil when it is satisfied.
// The returned error wraps ErrNotFound, ErrTypeMismatch, ErrStale or ErrStat.
func Evaluate(spec Spec) error {
	_, err := evaluate(spec)

	return err
}

// evaluate stats the path once and returns its info along with the outcome.
func evaluate(spec Spec) (os.FileInfo, error) {
	info, err := FsFactory().Stat(spec.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, spec.Path)
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrStat, spec.Path, err)
	}

	isDir := info.IsDir()

	switch spec.Kind {
	case KindFile:
		if isDir || !info.Mode().IsRegular() {
			return info, fmt.Errorf("%w: %s is not a file", ErrTypeMismatch, spec.Path)
		}
	case KindDirectory:
		if !isDir {
			return info, fmt.Errorf("%w: %s is not a directory", ErrTypeMismatch, spec.Path)
		}
	default:
		if !isDir && !info.Mode().IsRegular() {
			return info, fmt.Errorf("%w: %s is neither a file nor a directory", ErrTypeMismatch, spec.Path)
		}
	}

	threshold := Now().Add(-spec.Window)
	if info.ModTime().Before(threshold) {
		return info, fmt.Errorf("%w: %s %s was last modified at %s, not within the last %s",
			ErrStale, kindOf(isDir), spec.Path, info.ModTime().Format(time.RFC3339), spec.Window)
	}

	return info, nil
}

// Check evaluates a precondition on path and returns whether it holds together
// with a message suitable for display.
func Check(path string, window time.Duration, kind Kind) (bool, string) {
	info, err := evaluate(Spec{Path: path, Window: window, Kind: kind})
	if err != nil {
		return false, err.Error()
	}

	return true, fmt.Sprintf("%s %s was modified within the last %s", kindOf(info.IsDir()), path, window)
}

func kindOf(isDir bool) string {
	if isDir {
		return "directory"
	}

	return "file"
}
