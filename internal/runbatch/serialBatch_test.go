// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"testing"

	"github.com/matt-FFFFFF/volley/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func labels(rs Results) []string {
	res := make([]string, 0, len(rs))
	for _, r := range rs {
		res = append(res, r.Label)
	}

	return res
}

func resultIndexes(rec *progress.Recorder) []int {
	var res []int
	for _, e := range rec.Filter(progress.EventCompleted, progress.EventFailed) {
		res = append(res, e.Index)
	}

	return res
}

func TestSerialBatchRun_AllSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	rec := &progress.Recorder{}
	batch := &SerialBatch{
		Label:    "batch",
		Commands: NewCommands(ctx, []string{"echo one", "echo two"}, false),
		Reporter: rec,
	}

	results := batch.Run(ctx)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Error)
	assert.False(t, results.HasError())

	children := results[0].Children
	require.Len(t, children, 2)
	assert.Equal(t, "one\n", string(children[0].StdOut))
	assert.Equal(t, "two\n", string(children[1].StdOut))

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, progress.EventBatchStarted, events[0].Type)
	assert.Equal(t, 2, events[0].Data.Total)
	assert.Equal(t, "sequential", events[0].Data.Mode)
	assert.Equal(t, progress.EventBatchCompleted, events[len(events)-1].Type)
	assert.False(t, events[len(events)-1].Data.Failed)
	assert.Equal(t, []int{0, 1}, resultIndexes(rec))
}

func TestSerialBatchRun_StopOnError(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	rec := &progress.Recorder{}
	batch := &SerialBatch{
		Label:    "stop",
		Commands: NewCommands(ctx, []string{"true", "false", "true"}, false),
		Policy:   StopOnError,
		Reporter: rec,
	}

	results := batch.Run(ctx)
	children := results[0].Children
	require.Len(t, children, 2, "the third command must not run")
	assert.Equal(t, 0, children[0].ExitCode)
	assert.Equal(t, 1, children[1].ExitCode)
	assert.ErrorIs(t, results[0].Error, ErrResultChildrenHasError)

	assert.Equal(t, []int{0, 1}, resultIndexes(rec))
	assert.Len(t, rec.Filter(progress.EventAborted), 1)
	assert.Len(t, rec.Filter(progress.EventStarted), 2)
}

func TestSerialBatchRun_ContinueOnError(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	rec := &progress.Recorder{}
	batch := &SerialBatch{
		Label:    "continue",
		Commands: NewCommands(ctx, []string{"true", "false", "no-such-command-xyz", "echo last"}, false),
		Policy:   ContinueOnError,
		Reporter: rec,
	}

	results := batch.Run(ctx)
	children := results[0].Children
	require.Len(t, children, 4)
	assert.Equal(t, []string{"true", "false", "no-such-command-xyz", "echo last"}, labels(children))
	assert.ErrorIs(t, children[2].Error, ErrCommandNotFound)
	assert.Equal(t, "last\n", string(children[3].StdOut))

	assert.Equal(t, []int{0, 1, 2, 3}, resultIndexes(rec))
	assert.Empty(t, rec.Filter(progress.EventAborted))
	assert.True(t, rec.Filter(progress.EventBatchCompleted)[0].Data.Failed)
}

func TestSerialBatchRun_CommandNotFoundSkipsShell(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	batch := &SerialBatch{
		Label:    "lookup",
		Commands: NewCommands(ctx, []string{"missing-tool --flag"}, true),
		Lookup: func(name string) (string, error) {
			assert.Equal(t, "missing-tool", name)
			return "", ErrCommandNotFound
		},
	}

	results := batch.Run(ctx)
	res := results[0].Children[0]
	require.ErrorIs(t, res.Error, ErrCommandNotFound)
	assert.Equal(t, -1, res.ExitCode)
	assert.Empty(t, res.StdErr, "the shell must not have been invoked")
}

func TestSerialBatchRun_ShellMode(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	batch := &SerialBatch{
		Label:    "shell",
		Commands: NewCommands(ctx, []string{`echo "a b" | tr a-z A-Z`}, true),
	}

	res := batch.Run(ctx)[0].Children[0]
	require.NoError(t, res.Error)
	assert.Equal(t, "A B\n", string(res.StdOut))
}

func TestSerialBatchRun_ArgvModeIsLiteral(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	batch := &SerialBatch{
		Label:    "argv",
		Commands: NewCommands(ctx, []string{`echo "a b" | tr`}, false),
	}

	res := batch.Run(ctx)[0].Children[0]
	require.NoError(t, res.Error)
	assert.Equal(t, "a b | tr\n", string(res.StdOut))
}

func TestSerialBatchRun_InvalidLine(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	batch := &SerialBatch{
		Label:    "invalid",
		Commands: NewCommands(ctx, []string{`echo "unterminated`, "echo after"}, false),
		Policy:   ContinueOnError,
	}

	children := batch.Run(ctx)[0].Children
	require.Len(t, children, 2)
	require.ErrorIs(t, children[0].Error, ErrCouldNotStartProcess)
	assert.Equal(t, "after\n", string(children[1].StdOut))
}

func TestSerialBatchRun_Empty(t *testing.T) {
	batch := &SerialBatch{Label: "empty"}

	results := batch.Run(testContext(t))
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Children)
	assert.False(t, results.HasError())
}

func TestSerialBatchRun_LookupError(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	lookupErr := errors.New("boom")
	batch := &SerialBatch{
		Commands: NewCommands(ctx, []string{"echo hi"}, false),
		Lookup:   func(string) (string, error) { return "", lookupErr },
	}

	res := batch.Run(ctx)[0].Children[0]
	assert.ErrorIs(t, res.Error, ErrCommandNotFound)
}

func TestSerialBatchRun_ReportsOutputEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := testContext(t)
	rec := &progress.Recorder{}
	batch := &SerialBatch{
		Label:      "output",
		Commands:   NewCommands(ctx, []string{`sh -c "echo working; sleep 1"`}, false),
		Reporter:   rec,
		LiveOutput: true,
	}

	results := batch.Run(ctx)
	require.False(t, results.HasError())

	outputs := rec.Filter(progress.EventOutput)
	require.NotEmpty(t, outputs)
	assert.Equal(t, 0, outputs[0].Index)
	assert.Equal(t, "working", outputs[0].Data.OutputLine)
}
