// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorWhite     = lipgloss.Color("231")
	colorHeader    = lipgloss.Color("60")
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 2)

	labelStyle        = lipgloss.NewStyle().Width(18)
	focusedLabelStyle = labelStyle.Foreground(colorHighlight).Bold(true)

	gradeStyle        = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("237")).Foreground(colorWhite)
	focusedGradeStyle = gradeStyle.Background(colorHighlight)

	statusStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	infoStyle   = lipgloss.NewStyle().Foreground(colorSubtle)

	focusedInputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)
