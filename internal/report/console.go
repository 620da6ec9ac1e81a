// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/volley/internal/progress"
)

const (
	progressBarWidth  = 40
	modeSequential    = "sequential"
	modeParallel      = "parallel"
	durationPrecision = 10 * time.Millisecond
)

var _ progress.Reporter = (*Console)(nil)

// Console prints banners, result panels and the summary to a writer.
// It is safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	styles *Styles
	bar    bprogress.Model
	mode   string
	total  int
	done   int
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)

	return &Console{
		out:    w,
		styles: NewStyles(r),
		bar: bprogress.New(
			bprogress.WithDefaultGradient(),
			bprogress.WithWidth(progressBarWidth),
			bprogress.WithColorProfile(r.ColorProfile()),
		),
	}
}

// Banner announces the start of a run.
func (c *Console) Banner(total int, mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.println(c.styles.Banner.Render(fmt.Sprintf("Running %s (%s)", plural(total, "command"), mode)))
}

// Precheck prints the path being checked and the outcome of the check.
func (c *Console) Precheck(path string, ok bool, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.println(c.styles.Check.Render("Checking path condition: " + path))

	if ok {
		c.println(c.styles.SuccessTitle.UnsetBold().Render(message))
		return
	}

	c.println(c.styles.Notice.Render(message))
}

// Error prints a message for an error that stops the run before any command starts.
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.println(c.styles.Notice.Render("Error: " + err.Error()))
}

// Report implements progress.Reporter.
func (c *Console) Report(e progress.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Type {
	case progress.EventBatchStarted:
		c.mode = e.Data.Mode
		c.total = e.Data.Total
		c.done = 0

		if c.mode == modeParallel {
			c.println(c.styles.Warning.Render("Running all commands in parallel..."))
		}

	case progress.EventStarted:
		if c.mode == modeSequential {
			c.println("\n" + c.styles.Running.Render("Running:") + " " + e.Label)
		}

	case progress.EventCompleted, progress.EventFailed:
		c.println(c.panel(e))

		c.done++
		if c.mode == modeSequential && c.total > 0 {
			c.println(c.progressLine())
		}

	case progress.EventAborted:
		c.println(c.styles.Notice.Render(
			fmt.Sprintf("%q failed and --continue-on-error is not set, not running the remaining commands", e.Label)))
	}
}

// Close implements progress.Reporter.
func (c *Console) Close() {}

func (c *Console) panel(e progress.Event) string {
	sb := strings.Builder{}

	if e.Type == progress.EventCompleted {
		sb.WriteString(c.styles.SuccessTitle.Render("✓ Succeeded"))
		sb.WriteString("\n\nCommand ")
		sb.WriteString(c.styles.Command.Render(quote(e.Label)))
		sb.WriteString(" succeeded")

		if out := trimOutput(e.Data.StdOut); out != "" {
			sb.WriteString("\n\n")
			sb.WriteString(out)
		}

		return c.styles.SuccessPanel.Render(sb.String())
	}

	sb.WriteString(c.styles.FailedTitle.Render("✗ Failed"))
	sb.WriteString("\n\nCommand ")
	sb.WriteString(c.styles.Command.Render(quote(e.Label)))
	sb.WriteString(" failed")

	if e.Data.ExitCode > 0 {
		fmt.Fprintf(&sb, " (exit code: %d)", e.Data.ExitCode)
	}

	if e.Data.Error != nil {
		sb.WriteString("\n\n")
		sb.WriteString(c.styles.Notice.Render("Error: " + e.Data.Error.Error()))
	}

	if errOut := trimOutput(e.Data.StdErr); errOut != "" {
		sb.WriteString("\n\nError output:\n")
		sb.WriteString(errOut)
	}

	return c.styles.FailedPanel.Render(sb.String())
}

func (c *Console) progressLine() string {
	pct := float64(c.done) / float64(c.total)

	return fmt.Sprintf("%s %s %d/%d",
		c.styles.Faint.Render("Running commands sequentially"),
		c.bar.ViewAs(pct),
		c.done,
		c.total,
	)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s) // nolint:errcheck
}

func trimOutput(b []byte) string {
	return strings.TrimRight(string(b), "\r\n")
}

func quote(s string) string {
	return "'" + s + "'"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}
