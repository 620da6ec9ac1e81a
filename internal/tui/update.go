// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/volley/internal/progress"
)

const (
	commandDurationRounding = 100 * time.Millisecond
	minNameWidth            = 20
	ellipsis                = "…"
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case ProgressEventMsg:
		m.processProgressEvent(msg.Event)
		if m.completed {
			return m, tea.Quit
		}

		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var view strings.Builder

	title := "volley"
	if m.mode != "" {
		title += " (" + m.mode + ")"
	}

	view.WriteString(m.styles.Title.Render(title))
	view.WriteString("\n")

	now := time.Now()
	for _, n := range m.nodes {
		m.renderCommandNode(&view, n, now)
	}

	if m.abortMsg != "" {
		view.WriteString("\n")
		view.WriteString(m.styles.Error.Render(m.abortMsg))
		view.WriteString("\n")
	}

	var footer string

	switch {
	case m.completed && m.failed:
		footer = m.styles.Failed.Render(fmt.Sprintf("Finished with errors, %d/%d commands ran", m.done, len(m.nodes)))
	case m.completed:
		footer = m.styles.Success.Render(fmt.Sprintf("All %d commands succeeded", m.done))
	case m.quitting:
		footer = m.styles.Error.Render("Stopping...")
	default:
		footer = m.styles.Help.Render(fmt.Sprintf("%d/%d done, 'q' to stop", m.done, len(m.nodes)))
	}

	view.WriteString(footer)
	view.WriteString("\n")

	return view.String()
}

// renderCommandNode renders a single command line.
func (m *Model) renderCommandNode(b *strings.Builder, n *CommandNode, now time.Time) {
	var icon, name string

	label := m.truncate(n.Name)

	switch n.Status {
	case StatusRunning:
		icon = m.spinner.View()
		name = m.styles.Running.Render(label)
	case StatusSuccess:
		icon = m.styles.Success.Render("✓")
		name = m.styles.Success.Render(label)
	case StatusFailed:
		icon = m.styles.Failed.Render("✗")
		name = m.styles.Failed.Render(label)
	case StatusSkipped:
		icon = m.styles.Skipped.UnsetStrikethrough().Render("~")
		name = m.styles.Skipped.Render(label)
	default:
		icon = m.styles.Pending.Render("·")
		name = m.styles.Pending.Render(label)
	}

	b.WriteString(icon)
	b.WriteString(" ")
	b.WriteString(name)

	if elapsed := n.Elapsed(now); elapsed > 0 {
		b.WriteString(m.styles.Output.Render(fmt.Sprintf(" (%v)", elapsed.Round(commandDurationRounding))))
	}

	switch {
	case n.Status == StatusFailed && n.ErrorMsg != "":
		b.WriteString("  ")
		b.WriteString(m.styles.Error.Render("Error: " + n.ErrorMsg))
	case n.Status == StatusFailed:
		b.WriteString("  ")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("exit code %d", n.ExitCode)))
	case n.Status == StatusRunning && n.LastOutput != "":
		b.WriteString("  ")
		b.WriteString(m.styles.Output.Render(m.truncate(n.LastOutput)))
	}

	b.WriteString("\n")
}

// truncate shortens long command lines to half the terminal width.
func (m *Model) truncate(s string) string {
	limit := m.width / 2 //nolint:mnd
	if limit < minNameWidth || lipgloss.Width(s) <= limit {
		return s
	}

	r := []rune(s)
	if len(r) <= limit {
		return s
	}

	return string(r[:limit-1]) + ellipsis
}
