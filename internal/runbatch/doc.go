// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs a batch of commands either one at a time (SerialBatch)
// or all at once (ParallelBatch) and collects one Result per command.
// Both batches report every result to a progress.Reporter as soon as it is
// known and in submission order, and both obey the same ErrorPolicy.
package runbatch
