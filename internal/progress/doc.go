// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the events a batch emits while it runs and the
// Reporter interface that receives them. The executor never writes to the
// console itself; the console panels, the progress bar and the TUI are all
// Reporters.
package progress
