// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security holds passwords in a redacting wrapper so they do not
// leak through fmt, JSON or log output while travelling from an input
// widget to the credential store.
package security

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret is a byte slice holding sensitive material such as a password.
type Secret []byte

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter so every verb is redacted.
func (s Secret) Format(f fmt.State, c rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON redacts secrets in JSON output.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// MarshalText redacts secrets for text encoding.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Empty reports whether the secret holds no bytes.
func (s Secret) Empty() bool { return len(s) == 0 }

// Reveal returns the secret as a string. The result cannot be zeroed, so
// callers should use it only at the point of hashing.
func (s Secret) Reveal() string { return string(s) }

// Use executes fn with the underlying bytes (not a copy).
func (s Secret) Use(fn func([]byte) error) error {
	return fn([]byte(s))
}

// Zero overwrites the underlying byte slice with zeros.
func (s *Secret) Zero() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}

// FromString creates a Secret from user input.
func FromString(in string) Secret { return Secret([]byte(in)) }

// FromBytes creates a Secret holding a copy of in.
func FromBytes(in []byte) Secret {
	out := make([]byte, len(in))
	copy(out, in)
	return Secret(out)
}
