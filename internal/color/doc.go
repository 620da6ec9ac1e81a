// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for the log handler.
// Output is coloured when the NO_COLOR environment variable is unset and either
// FORCE_COLOR is set or standard error is a terminal (golang.org/x/term).
package color
