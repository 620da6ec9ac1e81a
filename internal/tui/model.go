// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/volley/internal/progress"
)

// CommandStatus represents the current state of a command in the TUI.
type CommandStatus int

const (
	StatusPending CommandStatus = iota
	StatusRunning
	StatusSuccess
	StatusFailed
	StatusSkipped
)

// String returns a string representation of the command status.
func (s CommandStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// CommandNode is one line of the view.
type CommandNode struct {
	Name       string
	Status     CommandStatus
	ExitCode   int
	ErrorMsg   string
	LastOutput string
	StartTime  time.Time
	EndTime    time.Time
}

// Elapsed returns how long the command has been running, or ran for.
func (cn *CommandNode) Elapsed(now time.Time) time.Duration {
	switch {
	case cn.StartTime.IsZero():
		return 0
	case cn.EndTime.IsZero():
		return now.Sub(cn.StartTime)
	default:
		return cn.EndTime.Sub(cn.StartTime)
	}
}

// Model represents the TUI application state.
// It is only touched from the bubbletea event loop.
type Model struct {
	nodes     []*CommandNode
	mode      string
	done      int
	width     int
	abortMsg  string
	completed bool // the batch has finished
	failed    bool // at least one command failed
	quitting  bool // the user asked to leave
	spinner   spinner.Model
	styles    *Styles
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Skipped lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Skipped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Strikethrough(true),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
	}
}

// NewModel creates a model listing labels as pending commands.
func NewModel(labels []string) *Model {
	nodes := make([]*CommandNode, len(labels))
	for i, l := range labels {
		nodes[i] = &CommandNode{Name: l}
	}

	styles := NewStyles()

	return &Model{
		nodes:  nodes,
		styles: styles,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.Running),
		),
	}
}

// Completed reports whether the batch has finished.
func (m *Model) Completed() bool {
	return m.completed
}

// Quitting reports whether the user closed the view.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) node(index int, label string) *CommandNode {
	if index < 0 {
		return nil
	}

	for len(m.nodes) <= index {
		m.nodes = append(m.nodes, &CommandNode{})
	}

	n := m.nodes[index]
	if n.Name == "" {
		n.Name = label
	}

	return n
}

// processProgressEvent applies one executor event to the model.
func (m *Model) processProgressEvent(event progress.Event) {
	switch event.Type {
	case progress.EventBatchStarted:
		m.mode = event.Data.Mode

	case progress.EventStarted:
		if n := m.node(event.Index, event.Label); n != nil {
			n.Status = StatusRunning
			n.StartTime = event.Timestamp
		}

	case progress.EventCompleted, progress.EventFailed:
		n := m.node(event.Index, event.Label)
		if n == nil {
			return
		}

		n.Status = StatusSuccess
		if event.Type == progress.EventFailed {
			n.Status = StatusFailed
		}

		n.ExitCode = event.Data.ExitCode
		n.EndTime = event.Timestamp

		if event.Data.Error != nil {
			n.ErrorMsg = event.Data.Error.Error()
		}

		m.done++

	case progress.EventOutput:
		if n := m.node(event.Index, event.Label); n != nil {
			n.LastOutput = event.Data.OutputLine
		}

	case progress.EventAborted:
		m.abortMsg = event.Data.Message

		for _, n := range m.nodes {
			if n.Status == StatusPending {
				n.Status = StatusSkipped
			}
		}

	case progress.EventBatchCompleted:
		m.completed = true
		m.failed = event.Data.Failed
	}
}
