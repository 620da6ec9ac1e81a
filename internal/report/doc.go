// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders batch progress and results to a terminal.
//
// Console is a progress.Reporter: the executor sends it one event per
// command and it prints a bordered panel for each result. Styles are created
// from a lipgloss renderer bound to the output writer, so writing to a pipe
// or a file produces plain text.
package report
