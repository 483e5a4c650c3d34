// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds in-memory fakes shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/pathogui/pathograde/internal/credentials"
	"github.com/pathogui/pathograde/internal/gradelog"
)

// FakeAppender records appended grading records in memory. When Err is set,
// Append fails with it and records nothing.
type FakeAppender struct {
	mu      sync.Mutex
	Records []gradelog.Record
	Err     error
}

func (f *FakeAppender) Append(r gradelog.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Records = append(f.Records, r)
	return nil
}

// Len returns the number of recorded appends.
func (f *FakeAppender) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Records)
}

// FakeAuthenticator keeps plaintext passwords in a map and reports failures
// with the same errors as credentials.Store.
type FakeAuthenticator struct {
	mu    sync.Mutex
	Users map[string]string
}

// NewFakeAuthenticator returns an authenticator seeded with users.
func NewFakeAuthenticator(users map[string]string) *FakeAuthenticator {
	if users == nil {
		users = map[string]string{}
	}
	return &FakeAuthenticator{Users: users}
}

func (f *FakeAuthenticator) AddUser(_ context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if username == "" {
		return credentials.ErrInvalidUsername
	}
	if _, ok := f.Users[username]; ok {
		return credentials.ErrDuplicateUser
	}
	f.Users[username] = password
	return nil
}

func (f *FakeAuthenticator) VerifyUser(_ context.Context, username, password string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pw, ok := f.Users[username]
	if !ok {
		return false, credentials.ErrUnknownUser
	}
	if pw != password {
		return false, credentials.ErrInvalidCredentials
	}
	return true, nil
}
