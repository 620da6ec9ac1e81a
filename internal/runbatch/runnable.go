// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
)

// Runnable is something that can be run as a whole and produce results.
type Runnable interface {
	// Run executes the command or batch and returns the results.
	Run(ctx context.Context) Results
	// GetLabel returns the label of the command or batch.
	GetLabel() string
}
