// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/volley/internal/progress"
	"github.com/matt-FFFFFF/volley/internal/runbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchStarted(total int, mode string) progress.Event {
	return progress.NewEvent(-1, "batch", progress.EventBatchStarted, progress.EventData{Total: total, Mode: mode})
}

func TestConsole_PlainTextForNonTerminal(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Banner(2, "sequential")
	c.Report(batchStarted(1, "sequential"))
	c.Report(progress.NewEvent(0, "echo hi", progress.EventCompleted, progress.EventData{StdOut: []byte("hi\n")}))

	assert.NotContains(t, buf.String(), "\x1b[", "a bytes.Buffer is not a terminal")
}

func TestConsole_SuccessPanel(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Report(progress.NewEvent(0, "echo hi", progress.EventCompleted, progress.EventData{StdOut: []byte("hi there\n")}))

	out := buf.String()
	assert.Contains(t, out, "✓ Succeeded")
	assert.Contains(t, out, "Command 'echo hi' succeeded")
	assert.Contains(t, out, "hi there")
	assert.Contains(t, out, "╭", "panels have a rounded border")
}

func TestConsole_FailedPanel(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Report(progress.NewEvent(0, "ls /nope", progress.EventFailed, progress.EventData{
		ExitCode: 2,
		StdOut:   []byte("not shown"),
		StdErr:   []byte("ls: cannot access '/nope'\n"),
	}))

	out := buf.String()
	assert.Contains(t, out, "✗ Failed")
	assert.Contains(t, out, "Command 'ls /nope' failed (exit code: 2)")
	assert.Contains(t, out, "Error output:")
	assert.Contains(t, out, "cannot access")
	assert.NotContains(t, out, "not shown")
}

func TestConsole_FailedPanelWithError(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Report(progress.NewEvent(0, "missing", progress.EventFailed, progress.EventData{
		ExitCode: -1,
		Error:    runbatch.ErrCommandNotFound,
	}))

	out := buf.String()
	assert.Contains(t, out, "Command 'missing' failed")
	assert.NotContains(t, out, "exit code")
	assert.Contains(t, out, "Error: "+runbatch.ErrCommandNotFound.Error())
}

func TestConsole_OnePanelPerResult(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Report(batchStarted(3, "sequential"))

	for i, label := range []string{"a", "b", "c"} {
		c.Report(progress.NewEvent(i, label, progress.EventStarted, progress.EventData{}))

		et, data := progress.EventCompleted, progress.EventData{}
		if label == "b" {
			et, data = progress.EventFailed, progress.EventData{ExitCode: 1}
		}

		c.Report(progress.NewEvent(i, label, et, data))
	}

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "✓ Succeeded"))
	assert.Equal(t, 1, strings.Count(out, "✗ Failed"))

	ia := strings.Index(out, "Command 'a'")
	ib := strings.Index(out, "Command 'b'")
	ic := strings.Index(out, "Command 'c'")
	assert.True(t, ia < ib && ib < ic, "panels are printed in report order")
}

func TestConsole_SequentialProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Report(batchStarted(2, "sequential"))
	c.Report(progress.NewEvent(0, "true", progress.EventStarted, progress.EventData{}))
	c.Report(progress.NewEvent(0, "true", progress.EventCompleted, progress.EventData{}))

	out := buf.String()
	assert.Contains(t, out, "Running: true")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "50%")

	c.Report(progress.NewEvent(1, "true", progress.EventCompleted, progress.EventData{}))
	assert.Contains(t, buf.String(), "2/2")
	assert.Contains(t, buf.String(), "100%")
}

func TestConsole_ParallelHasNoProgressBar(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Report(batchStarted(1, "parallel"))
	c.Report(progress.NewEvent(0, "echo a", progress.EventStarted, progress.EventData{}))
	c.Report(progress.NewEvent(0, "echo a", progress.EventCompleted, progress.EventData{}))

	out := buf.String()
	assert.Contains(t, out, "Running all commands in parallel...")
	assert.NotContains(t, out, "Running: echo a")
	assert.NotContains(t, out, "1/1")
}

func TestConsole_AbortNotice(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Report(progress.NewEvent(1, "false", progress.EventAborted, progress.EventData{}))
	assert.Contains(t, buf.String(), `"false" failed and --continue-on-error is not set`)
}

func TestConsole_Precheck(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Precheck("/data/in.csv", false, "file '/data/in.csv' was not modified in the last 5 minutes")

	out := buf.String()
	assert.Contains(t, out, "Checking path condition: /data/in.csv")
	assert.Contains(t, out, "was not modified in the last 5 minutes")
}

func TestConsole_BannerAndError(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf)

	c.Banner(1, "parallel")
	c.Error(errors.New("no commands provided"))

	out := buf.String()
	assert.Contains(t, out, "Running 1 command (parallel)")
	assert.Contains(t, out, "Error: no commands provided")
}

func TestConsole_Summary(t *testing.T) {
	ok := &runbatch.Result{Label: "echo a", Status: runbatch.ResultStatusSuccess}
	bad := &runbatch.Result{Label: "false", ExitCode: 1, Status: runbatch.ResultStatusError}
	missing := &runbatch.Result{
		Label:    "nope",
		ExitCode: -1,
		Error:    runbatch.ErrCommandNotFound,
		Status:   runbatch.ResultStatusError,
	}

	t.Run("all succeeded", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewConsole(buf).Summary(runbatch.Results{{Label: "batch", Children: runbatch.Results{ok}}})

		out := buf.String()
		assert.Contains(t, out, allSucceededStr)
		assert.Contains(t, out, "✓ echo a")
	})

	t.Run("some failed", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewConsole(buf).Summary(runbatch.Results{{
			Label:    "batch",
			Error:    runbatch.ErrResultChildrenHasError,
			Status:   runbatch.ResultStatusError,
			Children: runbatch.Results{ok, bad, missing},
		}})

		out := buf.String()
		require.Contains(t, out, someFailedStr)
		assert.Contains(t, out, "✓ echo a")
		assert.Contains(t, out, "✗ false (exit code: 1)")
		assert.Contains(t, out, "✗ nope (exit code: -1)")
		assert.Contains(t, out, "➜ Error: "+runbatch.ErrCommandNotFound.Error())
		assert.NotContains(t, out, runbatch.ErrResultChildrenHasError.Error())
		assert.NotContains(t, out, "batch")
	})
}
