// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{EventBatchStarted, "batch-started"},
		{EventStarted, "started"},
		{EventCompleted, "completed"},
		{EventFailed, "failed"},
		{EventAborted, "aborted"},
		{EventBatchCompleted, "batch-completed"},
		{EventOutput, "output"},
		{EventType(999), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestEventType_IsResult(t *testing.T) {
	assert.True(t, EventCompleted.IsResult())
	assert.True(t, EventFailed.IsResult())
	assert.False(t, EventStarted.IsResult())
	assert.False(t, EventAborted.IsResult())
	assert.False(t, EventBatchCompleted.IsResult())
	assert.False(t, EventOutput.IsResult())
}

func TestNewEvent(t *testing.T) {
	before := time.Now()
	e := NewEvent(2, "echo a", EventCompleted, EventData{ExitCode: 0, StdOut: []byte("a\n")})

	assert.Equal(t, 2, e.Index)
	assert.Equal(t, "echo a", e.Label)
	assert.Equal(t, EventCompleted, e.Type)
	assert.False(t, e.Timestamp.Before(before))
	assert.Equal(t, []byte("a\n"), e.Data.StdOut)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}

	wg := sync.WaitGroup{}
	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			r.Report(NewEvent(i, "cmd", EventCompleted, EventData{}))
		}()
	}

	wg.Wait()
	r.Report(NewEvent(-1, "batch", EventBatchCompleted, EventData{}))
	r.Close()

	assert.Len(t, r.Events(), 11)
	assert.Len(t, r.Filter(EventCompleted), 10)
	assert.Len(t, r.Filter(EventBatchCompleted, EventAborted), 1)
	assert.True(t, r.Closed())
}

func TestMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi(a, nil, b)

	m.Report(NewEvent(0, "x", EventStarted, EventData{}))
	m.Close()

	require.Len(t, a.Events(), 1)
	require.Len(t, b.Events(), 1)
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
}

func TestMulti_Single(t *testing.T) {
	a := &Recorder{}
	assert.Same(t, a, Multi(a, nil))
}

func TestNullReporter(t *testing.T) {
	var r Reporter = NullReporter{}

	assert.NotPanics(t, func() {
		r.Report(NewEvent(0, "x", EventFailed, EventData{}))
		r.Close()
	})
}
