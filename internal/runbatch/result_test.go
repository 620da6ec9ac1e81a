// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultFailed(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{name: "success", result: Result{Status: ResultStatusSuccess}, want: false},
		{name: "non-zero exit", result: Result{ExitCode: 2}, want: true},
		{name: "error", result: Result{Error: errors.New("x")}, want: true},
		{name: "error status", result: Result{Status: ResultStatusError}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.result.Failed())
		})
	}
}

func TestResultsHasError_Nested(t *testing.T) {
	ok := &Result{Label: "ok"}
	bad := &Result{Label: "bad", ExitCode: 1}

	assert.False(t, Results{ok}.HasError())
	assert.True(t, Results{ok, bad}.HasError())
	assert.True(t, Results{{Label: "batch", Children: Results{ok, bad}}}.HasError())
	assert.False(t, Results{}.HasError())
}

func TestResultsLeaves(t *testing.T) {
	a := &Result{Label: "a"}
	b := &Result{Label: "b"}
	c := &Result{Label: "c"}

	rs := Results{
		{Label: "outer", Children: Results{a, {Label: "inner", Children: Results{b}}}},
		c,
	}

	assert.Equal(t, Results{a, b, c}, rs.Leaves())
}

func TestResultsErr(t *testing.T) {
	notFound := errors.Join(ErrCommandNotFound, errors.New("missing"))
	rs := batchResult("batch", Results{
		{Label: "true"},
		{Label: "false", ExitCode: 1},
		{Label: "missing", ExitCode: -1, Error: notFound},
	})

	err := rs.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonZeroExit)
	assert.ErrorIs(t, err, ErrCommandNotFound)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)
	assert.Contains(t, merr.Errors[0].Error(), "false: ")
	assert.Contains(t, merr.Errors[1].Error(), "missing: ")

	assert.NoError(t, batchResult("ok", Results{{Label: "true"}}).Err())
}

func TestBatchResult(t *testing.T) {
	ok := batchResult("ok", Results{{Label: "a", Status: ResultStatusSuccess}})
	require.Len(t, ok, 1)
	assert.Equal(t, ResultStatusSuccess, ok[0].Status)
	assert.NoError(t, ok[0].Error)

	bad := batchResult("bad", Results{{Label: "a", ExitCode: 1}})
	assert.Equal(t, ResultStatusError, bad[0].Status)
	assert.ErrorIs(t, bad[0].Error, ErrResultChildrenHasError)
	assert.Equal(t, -1, bad[0].ExitCode)
}

func TestResultStatusString(t *testing.T) {
	assert.Equal(t, "success", ResultStatusSuccess.String())
	assert.Equal(t, "error", ResultStatusError.String())
	assert.Equal(t, "unknown", ResultStatusUnknown.String())
}
