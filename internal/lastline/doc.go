// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lastline provides an io.Writer that passes output through to another
// writer and remembers the last complete, non-blank line. It lets a live view
// show what a long-running command is doing without touching its captured
// output.
package lastline
