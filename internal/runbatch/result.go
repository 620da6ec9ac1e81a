// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrResultChildrenHasError is set on a batch result when any command failed.
	ErrResultChildrenHasError = errors.New("result has children with errors")
	// ErrNonZeroExit describes a command that ran but exited with a non-zero status.
	ErrNonZeroExit = errors.New("command exited with non-zero status")
)

// ResultStatus is the outcome of a command.
type ResultStatus int

const (
	// ResultStatusUnknown is the zero value.
	ResultStatusUnknown ResultStatus = iota
	// ResultStatusSuccess means exit code zero and no error.
	ResultStatusSuccess
	// ResultStatusError means the command was not found, could not start, or exited non-zero.
	ResultStatusError
)

// String returns the string representation of the ResultStatus.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	default:
		return unknownStr
	}
}

// Result represents the outcome of running a command or batch.
type Result struct {
	Label    string        // The command line, or the batch label
	ExitCode int           // Exit code, -1 when the process never ran or was killed
	Error    error         // Tool level error, nil for a plain non-zero exit
	StdOut   []byte        // Captured standard output
	StdErr   []byte        // Captured standard error
	Status   ResultStatus  // Derived outcome
	Duration time.Duration // Wall time between start and exit
	Children Results       // Per-command results of a batch
}

// Failed reports whether the result is not a success.
func (r *Result) Failed() bool {
	return r.Error != nil || r.ExitCode != 0 || r.Status == ResultStatusError
}

// Results is a slice of Result pointers.
type Results []*Result

// HasError reports whether any result, or any nested child, failed.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Failed() {
			return true
		}

		if v.Children.HasError() {
			return true
		}
	}

	return false
}

// Leaves returns the per-command results in order, flattening batches.
func (r Results) Leaves() Results {
	var res Results

	for _, v := range r {
		if len(v.Children) > 0 {
			res = append(res, v.Children.Leaves()...)
			continue
		}

		res = append(res, v)
	}

	return res
}

// Err returns every failed command as one error, or nil when all succeeded.
func (r Results) Err() error {
	var merr *multierror.Error

	for _, v := range r.Leaves() {
		if !v.Failed() {
			continue
		}

		cause := v.Error
		if cause == nil {
			cause = fmt.Errorf("%w: %d", ErrNonZeroExit, v.ExitCode)
		}

		merr = multierror.Append(merr, fmt.Errorf("%s: %w", v.Label, cause))
	}

	return merr.ErrorOrNil()
}

func batchResult(label string, children Results) Results {
	res := &Result{
		Label:    label,
		Children: children,
		Status:   ResultStatusSuccess,
	}

	if children.HasError() {
		res.ExitCode = -1
		res.Error = ErrResultChildrenHasError
		res.Status = ResultStatusError
	}

	return Results{res}
}
