// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/volley/internal/runbatch"
)

const (
	allSucceededStr = "All commands succeeded"
	someFailedStr   = "Finished, but some commands failed"
)

// Summary prints the final panel: the overall outcome followed by one status
// line per command that ran.
func (c *Console) Summary(results runbatch.Results) {
	c.mu.Lock()
	defer c.mu.Unlock()

	style := c.styles.SuccessPanel
	title := c.styles.SuccessTitle.Render(allSucceededStr)

	if results.HasError() {
		style = c.styles.FailedPanel
		title = c.styles.FailedTitle.Render(someFailedStr)
	}

	body := c.resultTree(results)
	if body == "" {
		c.println(style.Render(title))
		return
	}

	c.println(style.Render(title + "\n\n" + body))
}

func (c *Console) resultTree(results runbatch.Results) string {
	sb := strings.Builder{}

	for _, r := range results {
		c.writeResult(&sb, r)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (c *Console) writeResult(sb *strings.Builder, r *runbatch.Result) {
	// a batch is only a container, list its commands at the same level
	if len(r.Children) > 0 {
		for _, child := range r.Children {
			c.writeResult(sb, child)
		}

		return
	}

	var status string

	switch r.Status {
	case runbatch.ResultStatusSuccess:
		status = c.styles.SuccessTitle.Render("✓")
	case runbatch.ResultStatusError:
		status = c.styles.FailedTitle.Render("✗")
	default:
		status = c.styles.Faint.Render("?")
	}

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	fmt.Fprintf(sb, "%s %s", status, label)

	if r.ExitCode != 0 {
		fmt.Fprintf(sb, " (exit code: %d)", r.ExitCode)
	}

	if r.Duration > 0 {
		sb.WriteString(c.styles.Faint.Render(fmt.Sprintf(" [%s]", r.Duration.Round(durationPrecision))))
	}

	sb.WriteString("\n")

	if r.Error != nil && !errors.Is(r.Error, runbatch.ErrResultChildrenHasError) {
		fmt.Fprintf(sb, "  %s %s\n", c.styles.Notice.Render("➜ Error:"), r.Error.Error())
	}
}
