// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker relays termination signals to a channel and watches it.
//
// Child processes share the terminal's process group, so the first Ctrl-C
// already reaches every running command. Watch only cancels the root context
// on the second signal of the same type, which makes exec.CommandContext kill
// whatever is still running.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/volley/internal/ctxlog"
)

var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

// New subscribes a buffered channel to sigs, or to the termination signals when
// none are given. The subscription is dropped when ctx is done.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "subscribing to signals", "signals", sigs)
	signal.Notify(ch, sigs...)

	go func() {
		<-ctx.Done()
		signal.Stop(ch)
	}()

	return ch
}
