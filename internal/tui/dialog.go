// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Dialog is a modal message box with a single acknowledge button.
type Dialog struct {
	title   string
	message string
	button  string
	isError bool
	width   int
}

// NewDialog creates an informational dialog.
func NewDialog(title, message, button string) *Dialog {
	return &Dialog{title: title, message: message, button: button, width: 60}
}

// NewErrorDialog creates a dialog rendered with the error palette.
func NewErrorDialog(title, message, button string) *Dialog {
	d := NewDialog(title, message, button)
	d.isError = true
	return d
}

// SetWidth sets the dialog width in cells.
func (d *Dialog) SetWidth(width int) {
	if width > 0 {
		d.width = width
	}
}

func (d *Dialog) Title() string   { return d.title }
func (d *Dialog) Message() string { return d.message }
func (d *Dialog) IsError() bool   { return d.isError }

// Render produces the dialog box with auto-calculated height.
func (d *Dialog) Render() string {
	bg := colorHeader
	if d.isError {
		bg = colorError
	}
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(bg).
		Bold(true).
		Width(d.width).
		Render(" " + d.title)

	message := lipgloss.NewStyle().
		Width(d.width-4).
		Padding(1, 2, 0, 2).
		Render(d.message)

	btn := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(colorHeader).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorHeader).
		Padding(0, 3, 0, 3).
		Render(d.button)
	buttons := lipgloss.NewStyle().Padding(1, 2, 1, 2).Render(btn)

	body := lipgloss.JoinVertical(lipgloss.Left, header, message, buttons)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Width(d.width).
		Render(body)
}
