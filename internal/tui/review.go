// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pathogui/pathograde/internal/gradelog"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/pathogui/pathograde/internal/images"
	"github.com/pathogui/pathograde/internal/review"
)

// statusTimeout is how long the save indicator stays visible.
const statusTimeout = 500 * time.Millisecond

// Focusable rows of the review form, in tab order.
const (
	fieldPrimary = iota
	fieldSecondary
	fieldX
	fieldY
	fieldComment
	fieldCount
)

// saveMsg performs the save after the "Saving..." status was rendered.
type saveMsg struct{}

// clearStatusMsg hides the status line unless a newer status replaced it.
type clearStatusMsg struct{ seq int }

type reviewModel struct {
	p         *review.Presenter
	describe  func(name string) (images.Info, error)
	clipboard func(text string) error

	x, y, comment textinput.Model
	focus         int

	info    images.Info
	infoErr error

	status    string
	statusErr bool
	statusSeq int
	saving    bool
	dialog    *Dialog

	keys reviewKeyMap
	help help.Model
}

func newReviewModel(p *review.Presenter, describe func(string) (images.Info, error), clip func(string) error) *reviewModel {
	m := &reviewModel{
		p:         p,
		describe:  describe,
		clipboard: clip,
		keys:      newReviewKeyMap(),
		help:      help.New(),
	}
	m.x = newField(i18n.T("review.x"), 16)
	m.y = newField(i18n.T("review.y"), 16)
	m.comment = newField(i18n.T("review.comment"), 48)
	m.comment.CharLimit = 1024
	m.load()
	return m
}

func newField(label string, width int) textinput.Model {
	t := textinput.New()
	t.Prompt = labelStyle.Render(label)
	t.Cursor.Style = focusedInputStyle
	t.CharLimit = 64
	t.Width = width
	return t
}

// load refreshes inputs and image details from the presenter.
func (m *reviewModel) load() {
	d := m.p.Draft()
	m.x.SetValue(d.X)
	m.y.SetValue(d.Y)
	m.comment.SetValue(d.Comment)
	m.info, m.infoErr = images.Info{}, nil
	if cur := m.p.Current(); cur != "" && m.describe != nil {
		m.info, m.infoErr = m.describe(cur)
	}
}

// sync copies the text inputs into the presenter's draft.
func (m *reviewModel) sync() {
	m.p.SetCoordinates(strings.TrimSpace(m.x.Value()), strings.TrimSpace(m.y.Value()))
	m.p.SetComment(m.comment.Value())
}

func (m *reviewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *reviewModel) setStatus(s string, isErr bool) tea.Cmd {
	m.status, m.statusErr = s, isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil

	case saveMsg:
		m.saving = false
		if err := m.p.Dispatch(context.Background(), review.ActionSave); err != nil {
			m.status = ""
			m.dialog = NewErrorDialog(i18n.T("review.save_failed_title"), err.Error(), i18n.T("dialog.ok"))
			return m, nil
		}
		return m, m.setStatus(i18n.T("review.saving"), false)

	case tea.KeyMsg:
		if m.dialog != nil {
			if key.Matches(msg, m.keys.Dismiss) {
				m.dialog = nil
			}
			return m, nil
		}
		if m.saving {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			m.sync()
			m.saving = true
			m.status, m.statusErr = i18n.T("review.saving"), false
			m.statusSeq++
			return m, func() tea.Msg { return saveMsg{} }
		case key.Matches(msg, m.keys.Next):
			return m, m.dispatch(review.ActionNext)
		case key.Matches(msg, m.keys.Previous):
			return m, m.dispatch(review.ActionPrevious)
		case key.Matches(msg, m.keys.Clear):
			m.sync()
			return m, m.dispatch(review.ActionClear)
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyName()
		case key.Matches(msg, m.keys.Focus):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Back):
			return m, m.setFocus(m.focus - 1)
		case m.focus == fieldPrimary || m.focus == fieldSecondary:
			m.cycleGrade(msg)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldX:
		m.x, cmd = m.x.Update(msg)
	case fieldY:
		m.y, cmd = m.y.Update(msg)
	case fieldComment:
		m.comment, cmd = m.comment.Update(msg)
	}
	m.sync()
	return m, cmd
}

func (m *reviewModel) dispatch(a review.Action) tea.Cmd {
	if err := m.p.Dispatch(context.Background(), a); err != nil {
		m.dialog = NewErrorDialog(i18n.T("dialog.error_title"), err.Error(), i18n.T("dialog.ok"))
		return nil
	}
	m.load()
	return nil
}

func (m *reviewModel) cycleGrade(msg tea.KeyMsg) {
	d := m.p.Draft()
	switch {
	case key.Matches(msg, m.keys.Right):
		if m.focus == fieldPrimary {
			m.p.CyclePrimary()
		} else {
			m.p.CycleSecondary()
		}
	case key.Matches(msg, m.keys.Left):
		if m.focus == fieldPrimary {
			m.p.SetPrimary(d.Primary.Prev())
		} else {
			m.p.SetSecondary(d.Secondary.Prev())
		}
	}
}

func (m *reviewModel) setFocus(i int) tea.Cmd {
	m.focus = (i + fieldCount) % fieldCount
	inputs := map[int]*textinput.Model{fieldX: &m.x, fieldY: &m.y, fieldComment: &m.comment}
	var cmd tea.Cmd
	for f, in := range inputs {
		if f == m.focus {
			cmd = in.Focus()
			in.TextStyle = focusedInputStyle
			continue
		}
		in.Blur()
		in.TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

func (m *reviewModel) copyName() tea.Cmd {
	cur := m.p.Current()
	if cur == "" || m.clipboard == nil {
		return nil
	}
	if err := m.clipboard(cur); err != nil {
		return m.setStatus(i18n.T("review.copy_failed", err), true)
	}
	return m.setStatus(i18n.T("review.copied", cur), false)
}

func (m *reviewModel) View() string {
	if m.dialog != nil {
		return m.dialog.Render()
	}
	var b strings.Builder
	cur := m.p.Current()
	if cur == "" {
		b.WriteString(titleStyle.Render(i18n.T("review.no_images")))
		b.WriteString("\n\n" + helpStyle.Render(m.help.View(m.keys)))
		return b.String()
	}

	b.WriteString(titleStyle.Render(images.Title(cur)))
	b.WriteString("\n")
	b.WriteString(i18n.T("review.user", m.p.User()))
	b.WriteString("   ")
	b.WriteString(i18n.T("review.position", m.p.Index()+1, m.p.Len()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.infoLine()))
	b.WriteString("\n\n")

	d := m.p.Draft()
	b.WriteString(m.gradeRow(fieldPrimary, i18n.T("review.primary"), d.Primary))
	b.WriteString("\n")
	b.WriteString(m.gradeRow(fieldSecondary, i18n.T("review.secondary"), d.Secondary))
	b.WriteString("\n")
	b.WriteString(m.x.View() + "\n")
	b.WriteString(m.y.View() + "\n")
	b.WriteString(m.comment.View() + "\n")

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *reviewModel) infoLine() string {
	if m.infoErr != nil {
		return m.infoErr.Error()
	}
	size := humanize.Bytes(uint64(m.info.Size))
	if m.info.Width == 0 || m.info.Height == 0 {
		return i18n.T("review.info_unknown", m.info.Name, size)
	}
	return i18n.T("review.info", m.info.Name, size, m.info.Width, m.info.Height)
}

func (m *reviewModel) gradeRow(field int, label string, g gradelog.Grade) string {
	ls, gs := labelStyle, gradeStyle
	if m.focus == field {
		ls, gs = focusedLabelStyle, focusedGradeStyle
	}
	val := g.String()
	if val == "" {
		val = " "
	}
	return ls.Render(label) + gs.Render(fmt.Sprintf("‹ %s ›", val))
}
