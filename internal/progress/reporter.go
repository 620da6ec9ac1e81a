// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"slices"
	"sync"
)

// Reporter receives events from a batch.
// Implementations must be safe for concurrent use: results are reported from
// the goroutine running the batch, while output events of running commands
// arrive from their own goroutines.
type Reporter interface {
	// Report handles one event.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// NullReporter discards every event.
type NullReporter struct{}

// Report implements Reporter.
func (NullReporter) Report(Event) {}

// Close implements Reporter.
func (NullReporter) Close() {}

// multiReporter forwards each event to several reporters in order.
type multiReporter []Reporter

// Multi returns a Reporter that forwards events to every non-nil reporter.
func Multi(reporters ...Reporter) Reporter {
	rs := slices.DeleteFunc(slices.Clone(reporters), func(r Reporter) bool { return r == nil })
	if len(rs) == 1 {
		return rs[0]
	}

	return multiReporter(rs)
}

func (m multiReporter) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

func (m multiReporter) Close() {
	for _, r := range m {
		r.Close()
	}
}

// Recorder keeps every event it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

// Report implements Reporter.
func (r *Recorder) Report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

// Close implements Reporter.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.events)
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.closed
}

// Filter returns the recorded events of the given types.
func (r *Recorder) Filter(types ...EventType) []Event {
	var res []Event

	for _, e := range r.Events() {
		if slices.Contains(types, e.Type) {
			res = append(res, e)
		}
	}

	return res
}
