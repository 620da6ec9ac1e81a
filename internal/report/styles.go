// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import "github.com/charmbracelet/lipgloss"

const (
	colourBlue   = lipgloss.Color("12")
	colourCyan   = lipgloss.Color("14")
	colourGreen  = lipgloss.Color("10")
	colourRed    = lipgloss.Color("9")
	colourYellow = lipgloss.Color("11")
	colourGrey   = lipgloss.Color("8")
)

// Styles contains all the styling used by Console.
type Styles struct {
	Banner       lipgloss.Style
	Check        lipgloss.Style
	SuccessPanel lipgloss.Style
	FailedPanel  lipgloss.Style
	SuccessTitle lipgloss.Style
	FailedTitle  lipgloss.Style
	Command      lipgloss.Style
	Running      lipgloss.Style
	Notice       lipgloss.Style
	Warning      lipgloss.Style
	Faint        lipgloss.Style
}

// NewStyles creates the default styles for the renderer r.
func NewStyles(r *lipgloss.Renderer) *Styles {
	panel := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		Banner: panel.
			BorderForeground(colourBlue).
			Foreground(colourBlue).
			Bold(true),
		Check: panel.
			BorderForeground(colourYellow).
			Foreground(colourYellow),
		SuccessPanel: panel.
			BorderForeground(colourGreen),
		FailedPanel: panel.
			BorderForeground(colourRed),
		SuccessTitle: r.NewStyle().
			Foreground(colourGreen).
			Bold(true),
		FailedTitle: r.NewStyle().
			Foreground(colourRed).
			Bold(true),
		Command: r.NewStyle().
			Bold(true),
		Running: r.NewStyle().
			Foreground(colourCyan),
		Notice: r.NewStyle().
			Foreground(colourRed),
		Warning: r.NewStyle().
			Foreground(colourYellow),
		Faint: r.NewStyle().
			Foreground(colourGrey),
	}
}
