// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"errors"
	"fmt"
)

// ErrAuthFailed is the umbrella for every failed verification. UIs match on
// it to show a single message that does not reveal whether the username
// exists.
var ErrAuthFailed = errors.New("authentication failed")

var (
	// ErrDuplicateUser is returned by AddUser when the username is taken.
	ErrDuplicateUser = errors.New("username already in use")
	// ErrUnknownUser is returned by VerifyUser when no such user exists.
	ErrUnknownUser = fmt.Errorf("%w: user does not exist", ErrAuthFailed)
	// ErrInvalidCredentials is returned by VerifyUser on a password mismatch.
	ErrInvalidCredentials = fmt.Errorf("%w: wrong password", ErrAuthFailed)
	// ErrInvalidUsername is returned when a username cannot be stored or
	// used as part of a log file name.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("credential store is closed")
)
