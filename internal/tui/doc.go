// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a live terminal view of a running batch. It lists every
// command with a spinner while it runs and a status mark once it is done.
//
// The view is driven by the same progress events as the console reporter.
// It quits on its own when the batch completes, after which the caller prints
// the usual result panels.
package tui
