// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
)

// ErrorPolicy decides what a batch does after a command fails.
type ErrorPolicy int

const (
	// StopOnError stops the batch after the first failed command has been reported.
	// In a parallel batch only launch failures can stop it, since every other
	// command has already been started by the time an exit status is known.
	StopOnError ErrorPolicy = iota
	// ContinueOnError runs every command regardless of failures.
	ContinueOnError
)

const (
	stopOnErrorStr     = "stop-on-error"
	continueOnErrorStr = "continue-on-error"
	unknownStr         = "unknown"
)

// ErrErrorPolicyUnknown is returned when parsing an unknown policy name.
var ErrErrorPolicyUnknown = errors.New("unknown error policy")

// String returns the string representation of the ErrorPolicy.
func (p ErrorPolicy) String() string {
	switch p {
	case StopOnError:
		return stopOnErrorStr
	case ContinueOnError:
		return continueOnErrorStr
	default:
		return unknownStr
	}
}

// NewErrorPolicy parses an ErrorPolicy from its string form.
func NewErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case stopOnErrorStr:
		return StopOnError, nil
	case continueOnErrorStr:
		return ContinueOnError, nil
	default:
		return ErrorPolicy(-1), ErrErrorPolicyUnknown
	}
}

// ShouldStop reports whether the batch must stop after res.
func (p ErrorPolicy) ShouldStop(res *Result) bool {
	return p == StopOnError && res.Failed()
}

// Mode selects how a batch runs its commands.
type Mode int

const (
	// ModeSequential runs commands one at a time in order.
	ModeSequential Mode = iota
	// ModeParallel starts every command, then waits for each in order.
	ModeParallel
)

// ErrModeUnknown is returned when parsing an unknown mode name.
var ErrModeUnknown = errors.New("unknown execution mode")

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeParallel:
		return "parallel"
	default:
		return unknownStr
	}
}

// NewMode parses a Mode from its string form.
func NewMode(s string) (Mode, error) {
	switch s {
	case "sequential":
		return ModeSequential, nil
	case "parallel":
		return ModeParallel, nil
	default:
		return Mode(-1), ErrModeUnknown
	}
}
