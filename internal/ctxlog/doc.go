// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The level is read once from VOLLEY_LOG_LEVEL (DEBUG, INFO, WARN or ERROR, anything
// else means WARN) and can be changed at runtime through LevelVar.
// The default logger writes to stderr with PrettyHandler so that it never
// interleaves with the result panels written to stdout.
package ctxlog
