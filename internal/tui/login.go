// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathogui/pathograde/internal/credentials"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/pathogui/pathograde/internal/logging"
	"github.com/pathogui/pathograde/internal/security"
)

// Authenticator is the part of the credential store the login screen needs.
type Authenticator interface {
	AddUser(ctx context.Context, username, password string) error
	VerifyUser(ctx context.Context, username, password string) (bool, error)
}

// loginResultMsg carries the outcome of a verification attempt.
type loginResultMsg struct {
	user string
	err  error
}

// userCreatedMsg carries the outcome of a create-user attempt.
type userCreatedMsg struct {
	user string
	err  error
}

// loggedInMsg tells the root model to switch to the review screen.
type loggedInMsg struct {
	user string
}

const (
	loginUsername = iota
	loginPassword
)

type loginModel struct {
	auth   Authenticator
	inputs []textinput.Model
	focus  int
	busy   bool
	dialog *Dialog
	keys   loginKeyMap
	help   help.Model
}

func newLoginModel(auth Authenticator) *loginModel {
	m := &loginModel{
		auth:   auth,
		inputs: make([]textinput.Model, 2),
		keys:   newLoginKeyMap(),
		help:   help.New(),
	}
	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedInputStyle
		t.CharLimit = 255
		t.Width = 32
		switch i {
		case loginUsername:
			t.Prompt = labelStyle.Render(i18n.T("login.username"))
		case loginPassword:
			t.Prompt = labelStyle.Render(i18n.T("login.password"))
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		m.inputs[i] = t
	}
	m.inputs[loginUsername].Focus()
	m.inputs[loginUsername].TextStyle = focusedInputStyle
	return m
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			logging.Infof("login failed for %q: %v", msg.user, msg.err)
			m.dialog = loginErrorDialog(msg.err)
			return m, nil
		}
		logging.Infof("user %q logged in", msg.user)
		user := msg.user
		return m, func() tea.Msg { return loggedInMsg{user: user} }

	case userCreatedMsg:
		m.busy = false
		if msg.err != nil {
			m.dialog = loginErrorDialog(msg.err)
			return m, nil
		}
		logging.Infof("created user %q", msg.user)
		m.dialog = NewDialog(i18n.T("login.created_title"), i18n.T("login.created_message"), i18n.T("dialog.ok"))
		return m, nil

	case tea.KeyMsg:
		if m.dialog != nil {
			if key.Matches(msg, m.keys.Dismiss) {
				m.dialog = nil
			}
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Login):
			return m, m.submit(m.verifyCmd)
		case key.Matches(msg, m.keys.NewUser):
			return m, m.submit(m.createCmd)
		case key.Matches(msg, m.keys.Next):
			return m, m.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *loginModel) cycleFocus(back bool) tea.Cmd {
	if back {
		m.focus--
	} else {
		m.focus++
	}
	if m.focus < 0 {
		m.focus = len(m.inputs) - 1
	} else if m.focus >= len(m.inputs) {
		m.focus = 0
	}
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
			m.inputs[i].TextStyle = focusedInputStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

// submit reads the form and clears the password field before handing the
// credentials to run.
func (m *loginModel) submit(run func(user string, pw security.Secret) tea.Cmd) tea.Cmd {
	user := strings.TrimSpace(m.inputs[loginUsername].Value())
	pw := security.FromString(m.inputs[loginPassword].Value())
	m.inputs[loginPassword].Reset()
	m.busy = true
	return run(user, pw)
}

func (m *loginModel) verifyCmd(user string, pw security.Secret) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		defer pw.Zero()
		ok, err := auth.VerifyUser(context.Background(), user, pw.Reveal())
		if err == nil && !ok {
			err = credentials.ErrInvalidCredentials
		}
		return loginResultMsg{user: user, err: err}
	}
}

func (m *loginModel) createCmd(user string, pw security.Secret) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		defer pw.Zero()
		return userCreatedMsg{user: user, err: auth.AddUser(context.Background(), user, pw.Reveal())}
	}
}

// loginErrorDialog shows one uniform message for every authentication
// failure so the screen does not reveal which usernames exist.
func loginErrorDialog(err error) *Dialog {
	if errors.Is(err, credentials.ErrAuthFailed) {
		return NewErrorDialog(i18n.T("login.failed_title"), i18n.T("login.failed_message"), i18n.T("dialog.ok"))
	}
	return NewErrorDialog(i18n.T("dialog.error_title"), err.Error(), i18n.T("dialog.ok"))
}

func (m *loginModel) View() string {
	if m.dialog != nil {
		return m.dialog.Render()
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("login.title")))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString("\n" + infoStyle.Render(i18n.T("login.checking")) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
