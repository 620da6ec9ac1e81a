// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lastline

import (
	"io"
	"strings"
	"sync"
)

const ellipsis = "..."

// MaxLineLength is how many bytes of a single line are kept. The rest of a
// longer line is passed through but not tracked.
const MaxLineLength = 4096

// Writer wraps an io.Writer and tracks the last complete line written to it.
// It is safe for concurrent use.
type Writer struct {
	w       io.Writer
	mu      sync.RWMutex
	last    string
	partial strings.Builder // head of the data after the last newline, at most MaxLineLength bytes
	lines   uint64          // complete non-blank lines seen so far
}

// New creates a Writer that forwards to w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer. Only the bytes accepted by the underlying writer
// are considered for line tracking.
func (lw *Writer) Write(p []byte) (int, error) {
	n, err := lw.w.Write(p)
	if n > 0 {
		lw.mu.Lock()
		lw.process(string(p[:n]))
		lw.mu.Unlock()
	}

	return n, err //nolint:wrapcheck
}

// process must be called with the write lock held.
func (lw *Writer) process(data string) {
	for {
		idx := strings.IndexByte(data, '\n')
		if idx < 0 {
			lw.appendPartial(data)
			return
		}

		lw.appendPartial(data[:idx])
		lw.endLine()

		data = data[idx+1:]
	}
}

func (lw *Writer) appendPartial(s string) {
	room := MaxLineLength - lw.partial.Len()
	if room <= 0 {
		return
	}

	if len(s) > room {
		s = s[:room]
	}

	lw.partial.WriteString(s)
}

func (lw *Writer) endLine() {
	line := strings.TrimSpace(lw.partial.String())
	lw.partial.Reset()

	if line == "" {
		return
	}

	lw.last = line
	lw.lines++
}

// LastLine returns the last complete non-blank line, or an empty string if
// there is none yet. When maxLength > 0 longer lines are truncated to
// maxLength bytes, ending in "...".
func (lw *Writer) LastLine(maxLength int) string {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	if maxLength > len(ellipsis) && len(lw.last) > maxLength {
		return lw.last[:maxLength-len(ellipsis)] + ellipsis
	}

	return lw.last
}

// Partial returns the data written after the last newline.
func (lw *Writer) Partial() string {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	return lw.partial.String()
}

// Lines returns how many times the last line has changed. Pollers compare it
// with a previous value to see whether LastLine has something new.
func (lw *Writer) Lines() uint64 {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	return lw.lines
}
