// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a single update from a running batch.
type Event struct {
	Index     int       // Position of the command in the batch, -1 for batch level events
	Label     string    // The command line, or the batch label
	Type      EventType // What happened
	Timestamp time.Time // When it happened
	Data      EventData // Type specific data
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventBatchStarted is sent once before any command starts.
	EventBatchStarted EventType = iota
	// EventStarted indicates a command process was started.
	EventStarted
	// EventCompleted indicates a command exited with status zero.
	EventCompleted
	// EventFailed indicates a command could not be started, was not found, or exited non-zero.
	EventFailed
	// EventAborted indicates the error policy stopped the remaining commands.
	EventAborted
	// EventBatchCompleted is sent once after the last result.
	EventBatchCompleted
	// EventOutput carries the latest line of output of a running command.
	EventOutput
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventBatchStarted:
		return "batch-started"
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventAborted:
		return "aborted"
	case EventBatchCompleted:
		return "batch-completed"
	case EventOutput:
		return "output"
	default:
		return "unknown"
	}
}

// IsResult reports whether the event carries a command result.
func (et EventType) IsResult() bool {
	return et == EventCompleted || et == EventFailed
}

// EventData contains type specific information for progress events.
type EventData struct {
	// EventBatchStarted
	Total int    // Number of commands in the batch
	Mode  string // "sequential" or "parallel"

	// EventCompleted / EventFailed
	ExitCode int
	Error    error
	StdOut   []byte
	StdErr   []byte

	// EventOutput
	OutputLine string

	// EventAborted / EventBatchCompleted
	Message string
	Failed  bool // EventBatchCompleted: at least one command failed
}

// NewEvent returns an event stamped with the current time.
func NewEvent(index int, label string, et EventType, data EventData) Event {
	return Event{
		Index:     index,
		Label:     label,
		Type:      et,
		Timestamp: time.Now(),
		Data:      data,
	}
}
