// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathogui/pathograde/internal/credentials"
	"github.com/pathogui/pathograde/internal/gradelog"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/pathogui/pathograde/internal/images"
	"github.com/pathogui/pathograde/internal/review"
	"github.com/pathogui/pathograde/internal/testutil"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func keyType(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// runCmd executes cmd, giving up on commands that wait for a timer such as
// cursor blinks and status ticks.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// drive feeds msg to m and then every screen transition produced by the
// returned commands.
func drive(m Model, msg tea.Msg) Model {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out, cmd := m.Update(next)
		m = out.(Model)
		if cmd == nil {
			continue
		}
		switch res := runCmd(cmd).(type) {
		case loginResultMsg, userCreatedMsg, loggedInMsg, saveMsg:
			queue = append(queue, res)
		}
	}
	return m
}

func newTestModel(t *testing.T, users map[string]string) (Model, *testutil.FakeAuthenticator, *testutil.FakeAppender) {
	t.Helper()
	i18n.Init("en")
	auth := testutil.NewFakeAuthenticator(users)
	log := &testutil.FakeAppender{}
	m := New(Options{
		Auth:      auth,
		Log:       log,
		Images:    []string{"S1.tif", "S2.tif"},
		Describe:  func(name string) (images.Info, error) { return images.Info{Name: name, Size: 2048, Width: 4, Height: 3}, nil },
		Clipboard: func(string) error { return nil },
		Clock:     gradelog.FixedClock{T: time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)},
	})
	return m, auth, log
}

func login(m Model, user, pw string) Model {
	m = drive(m, keyRunes(user))
	m = drive(m, keyType(tea.KeyTab))
	m = drive(m, keyRunes(pw))
	return drive(m, keyType(tea.KeyEnter))
}

func TestLogin_Success(t *testing.T) {
	m, _, _ := newTestModel(t, map[string]string{"bob": "secret"})
	m = login(m, "bob", "secret")
	if m.state != reviewView {
		t.Fatalf("expected review view after login, got %v", m.state)
	}
	if m.review.p.User() != "bob" {
		t.Fatalf("logged in as %q", m.review.p.User())
	}
	if !strings.Contains(m.View(), "S1") {
		t.Fatalf("review view should show the first image:\n%s", m.View())
	}
}

func TestLogin_FailuresLookTheSame(t *testing.T) {
	var msgs []string
	for _, tc := range []struct{ user, pw string }{{"bob", "wrong"}, {"nobody", "secret"}} {
		m, _, _ := newTestModel(t, map[string]string{"bob": "secret"})
		m = login(m, tc.user, tc.pw)
		if m.state != loginView {
			t.Fatalf("%s: expected to stay on login", tc.user)
		}
		if m.login.dialog == nil || !m.login.dialog.IsError() {
			t.Fatalf("%s: expected error dialog", tc.user)
		}
		msgs = append(msgs, m.login.dialog.Title()+"|"+m.login.dialog.Message())
		if m.login.inputs[loginPassword].Value() != "" {
			t.Fatalf("password field must be cleared after an attempt")
		}
	}
	if msgs[0] != msgs[1] {
		t.Fatalf("wrong password and unknown user must look the same: %q vs %q", msgs[0], msgs[1])
	}
	if msgs[0] != i18n.T("login.failed_title")+"|"+i18n.T("login.failed_message") {
		t.Fatalf("unexpected message %q", msgs[0])
	}
}

func TestLogin_DialogDismiss(t *testing.T) {
	m, _, _ := newTestModel(t, map[string]string{})
	m = login(m, "x", "y")
	if m.login.dialog == nil {
		t.Fatalf("expected dialog")
	}
	m = drive(m, keyType(tea.KeyEnter))
	if m.login.dialog != nil {
		t.Fatalf("enter should dismiss the dialog")
	}
	if m.state != loginView {
		t.Fatalf("dismiss must not log in")
	}
}

func TestLogin_CreateUser(t *testing.T) {
	m, auth, _ := newTestModel(t, map[string]string{})
	m = drive(m, keyRunes("carol"))
	m = drive(m, keyType(tea.KeyTab))
	m = drive(m, keyRunes("pw"))
	m = drive(m, keyType(tea.KeyCtrlN))

	if auth.Users["carol"] != "pw" {
		t.Fatalf("user not created: %v", auth.Users)
	}
	if m.login.dialog == nil || m.login.dialog.IsError() || m.login.dialog.Title() != i18n.T("login.created_title") {
		t.Fatalf("expected success dialog, got %+v", m.login.dialog)
	}
	m = drive(m, keyType(tea.KeyEsc))

	// Same name again is a duplicate, shown as is. Focus is still on
	// the password field.
	m = drive(m, keyRunes("pw"))
	m = drive(m, keyType(tea.KeyCtrlN))
	if m.login.dialog == nil || !strings.Contains(m.login.dialog.Message(), credentials.ErrDuplicateUser.Error()) {
		t.Fatalf("expected duplicate error dialog, got %+v", m.login.dialog)
	}
}

func TestLogin_Quit(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	_, cmd := m.Update(keyType(tea.KeyEsc))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func loggedIn(t *testing.T) (Model, *testutil.FakeAppender) {
	t.Helper()
	m, _, log := newTestModel(t, map[string]string{"bob": "secret"})
	m = login(m, "bob", "secret")
	if m.state != reviewView {
		t.Fatalf("login failed")
	}
	return m, log
}

func TestReview_GradeAndSave(t *testing.T) {
	m, log := loggedIn(t)
	m = drive(m, keyType(tea.KeyRight)) // primary: 3
	m = drive(m, keyType(tea.KeyTab))
	m = drive(m, keyType(tea.KeyRight))
	m = drive(m, keyType(tea.KeyRight)) // secondary: 4
	m = drive(m, keyType(tea.KeyTab))   // x
	m = drive(m, keyType(tea.KeyTab))   // y
	m = drive(m, keyType(tea.KeyTab))   // comment
	m = drive(m, keyRunes("looks fine"))

	out, cmd := m.Update(keyType(tea.KeyCtrlS))
	m = out.(Model)
	if m.review.status != i18n.T("review.saving") {
		t.Fatalf("expected saving status before the write, got %q", m.review.status)
	}
	if len(log.Records) != 0 {
		t.Fatalf("write must happen after the status is shown")
	}
	m = drive(m, cmd())

	if len(log.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(log.Records))
	}
	r := log.Records[0]
	if r.Username != "bob" || r.Image != "S1.tif" || r.Primary != 3 || r.Secondary != 4 || r.Comment != "looks fine" {
		t.Fatalf("unexpected record %+v", r)
	}
	if r.X != "-0.500" || r.Y != "-0.500" {
		t.Fatalf("unexpected coordinates %q/%q", r.X, r.Y)
	}

	seq := m.review.statusSeq
	m = drive(m, clearStatusMsg{seq: seq})
	if m.review.status != "" {
		t.Fatalf("status should clear after the timer, got %q", m.review.status)
	}
}

func TestReview_StaleClearIgnored(t *testing.T) {
	m, _ := loggedIn(t)
	m.review.status = "copied"
	m.review.statusSeq = 5
	m = drive(m, clearStatusMsg{seq: 4})
	if m.review.status != "copied" {
		t.Fatalf("stale timer cleared a newer status")
	}
}

func TestReview_SaveFailureShowsDialog(t *testing.T) {
	m, log := loggedIn(t)
	log.Err = &gradelog.FileSystemError{Op: "open", Path: "/r/x.csv", Err: errors.New("read-only")}
	out, cmd := m.Update(keyType(tea.KeyCtrlS))
	m = drive(out.(Model), cmd())
	if m.review.dialog == nil || !strings.Contains(m.review.dialog.Message(), "read-only") {
		t.Fatalf("expected failure dialog, got %+v", m.review.dialog)
	}
}

func TestReview_Navigation(t *testing.T) {
	m, _ := loggedIn(t)
	m = drive(m, keyType(tea.KeyRight))
	m = drive(m, keyType(tea.KeyPgDown))
	if m.review.p.Index() != 1 || m.review.p.Draft().Primary != gradelog.GradeUnset {
		t.Fatalf("pgdown should move and clear: index %d draft %+v", m.review.p.Index(), m.review.p.Draft())
	}
	m = drive(m, keyType(tea.KeyCtrlF))
	if m.review.p.Index() != 1 {
		t.Fatalf("next at the end must stay put")
	}
	m = drive(m, keyType(tea.KeyCtrlB))
	if m.review.p.Index() != 0 {
		t.Fatalf("ctrl+b should go back")
	}
	m = drive(m, keyType(tea.KeyPgUp))
	if m.review.p.Index() != 0 {
		t.Fatalf("previous at the start must stay put")
	}
}

func TestReview_Clear(t *testing.T) {
	m, _ := loggedIn(t)
	m = drive(m, keyType(tea.KeyRight))
	for i := 0; i < 4; i++ {
		m = drive(m, keyType(tea.KeyTab))
	}
	m = drive(m, keyRunes("note"))
	m = drive(m, keyType(tea.KeyCtrlL))
	d := m.review.p.Draft()
	if d.Primary != gradelog.GradeUnset || d.Comment != "" || m.review.comment.Value() != "" {
		t.Fatalf("clear left state behind: %+v", d)
	}
	if d.X != "-0.500" {
		t.Fatalf("clear must keep coordinates: %+v", d)
	}
}

func TestReview_LeftCyclesBackwards(t *testing.T) {
	m, _ := loggedIn(t)
	m = drive(m, keyType(tea.KeyLeft))
	if m.review.p.Draft().Primary != 5 {
		t.Fatalf("left from unset should wrap to 5, got %v", m.review.p.Draft().Primary)
	}
}

func TestReview_CopyImageName(t *testing.T) {
	m, _, _ := newTestModel(t, map[string]string{"bob": "secret"})
	var copied string
	m.opts.Clipboard = func(s string) error { copied = s; return nil }
	m = login(m, "bob", "secret")
	m = drive(m, keyType(tea.KeyCtrlY))
	if copied != "S1.tif" {
		t.Fatalf("copied %q", copied)
	}
	if m.review.status == "" || m.review.statusErr {
		t.Fatalf("expected success status")
	}
}

func TestReview_NoImages(t *testing.T) {
	i18n.Init("en")
	p := review.New("bob", nil, &testutil.FakeAppender{})
	rm := newReviewModel(p, nil, nil)
	if !strings.Contains(rm.View(), i18n.T("review.no_images")) {
		t.Fatalf("expected empty-state message")
	}
	rm.Update(keyType(tea.KeyCtrlS))
	rm.Update(saveMsg{})
	if rm.dialog == nil {
		t.Fatalf("saving without images should report an error")
	}
}

func TestDialogRender(t *testing.T) {
	d := NewErrorDialog("Oops", "something broke", "OK")
	out := d.Render()
	for _, s := range []string{"Oops", "something broke", "OK"} {
		if !strings.Contains(out, s) {
			t.Fatalf("render missing %q:\n%s", s, out)
		}
	}
}
