// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the terminal front end for pathograde.
// The top-level model routes between the login screen and the review
// screen; all grading state lives in a review.Presenter.
package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathogui/pathograde/internal/images"
	"github.com/pathogui/pathograde/internal/logging"
	"github.com/pathogui/pathograde/internal/review"
)

// viewState represents which screen is active.
type viewState int

const (
	loginView viewState = iota
	reviewView
)

// Options carries the services the TUI drives.
type Options struct {
	Auth     Authenticator
	Log      review.Appender
	Images   []string
	Describe func(name string) (images.Info, error)
	// Clipboard defaults to the system clipboard.
	Clipboard func(text string) error
	Clock     review.Clock
}

// Model is the top-level Bubble Tea model.
type Model struct {
	state  viewState
	opts   Options
	login  *loginModel
	review *reviewModel
	width  int
	height int
}

// New creates the TUI starting at the login screen.
func New(opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	return Model{state: loginView, opts: opts, login: newLoginModel(opts.Auth)}
}

func (m Model) Init() tea.Cmd {
	return m.login.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case loggedInMsg:
		var opts []review.Option
		if m.opts.Clock != nil {
			opts = append(opts, review.WithClock(m.opts.Clock))
		}
		p := review.New(msg.user, m.opts.Images, m.opts.Log, opts...)
		m.review = newReviewModel(p, m.opts.Describe, m.opts.Clipboard)
		m.state = reviewView
		logging.Debugf("review session for %s over %d images", msg.user, p.Len())
		return m, m.review.Init()
	}

	switch m.state {
	case reviewView:
		_, cmd := m.review.Update(msg)
		return m, cmd
	default:
		_, cmd := m.login.Update(msg)
		return m, cmd
	}
}

func (m Model) View() string {
	var body string
	switch m.state {
	case reviewView:
		body = m.review.View()
	default:
		body = m.login.View()
	}
	if m.width > 0 && m.height > 0 && m.activeDialog() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return docStyle.Render(body)
}

func (m Model) activeDialog() bool {
	if m.state == reviewView {
		return m.review.dialog != nil
	}
	return m.login.dialog != nil
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
