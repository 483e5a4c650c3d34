// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/pathogui/pathograde/internal/i18n"
)

type loginKeyMap struct {
	Login   key.Binding
	NewUser key.Binding
	Next    key.Binding
	Quit    key.Binding
	Dismiss key.Binding
}

func (km loginKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Login, km.NewUser, km.Next, km.Quit}
}

func (km loginKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.ShortHelp()}
}

var _ help.KeyMap = loginKeyMap{}

func newLoginKeyMap() loginKeyMap {
	return loginKeyMap{
		Login: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("login.help_login")),
		),
		NewUser: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", i18n.T("login.help_new_user")),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "up", "down"),
			key.WithHelp("tab", i18n.T("help.next_field")),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", i18n.T("help.quit")),
		),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " ")),
	}
}

type reviewKeyMap struct {
	Focus    key.Binding
	Back     key.Binding
	Left     key.Binding
	Right    key.Binding
	Save     key.Binding
	Next     key.Binding
	Previous key.Binding
	Clear    key.Binding
	Copy     key.Binding
	Quit     key.Binding
	Dismiss  key.Binding
}

func (km reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Save, km.Next, km.Previous, km.Clear, km.Quit}
}

func (km reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Focus, km.Right, km.Left},
		{km.Save, km.Clear, km.Copy},
		{km.Next, km.Previous, km.Quit},
	}
}

var _ help.KeyMap = reviewKeyMap{}

func newReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", i18n.T("help.next_field")),
		),
		Back: key.NewBinding(key.WithKeys("shift+tab", "up")),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", i18n.T("review.help_grade_down")),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", i18n.T("review.help_grade_up")),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", i18n.T("review.help_save")),
		),
		Next: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", i18n.T("review.help_next")),
		),
		Previous: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", i18n.T("review.help_previous")),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", i18n.T("review.help_clear")),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", i18n.T("review.help_copy")),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", i18n.T("help.quit")),
		),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " ")),
	}
}
