// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import "bytes"

// cappedBuffer keeps the first max bytes written to it and silently drops the
// rest, so a chatty child never blocks on a full pipe.
type cappedBuffer struct {
	buf      bytes.Buffer
	max      int
	overflow bool
}

func newCappedBuffer(maxBytes int) *cappedBuffer {
	return &cappedBuffer{max: maxBytes}
}

// Write implements io.Writer. It always reports len(p) bytes written.
func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.max - b.buf.Len()
	if room < len(p) {
		b.overflow = true
		if room > 0 {
			b.buf.Write(p[:room])
		}

		return len(p), nil
	}

	b.buf.Write(p)

	return len(p), nil
}

// Bytes returns the captured bytes.
func (b *cappedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}

// Overflowed reports whether any bytes were dropped.
func (b *cappedBuffer) Overflowed() bool {
	return b.overflow
}
