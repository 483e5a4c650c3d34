// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the per-user random salt.
	SaltSize = 16
	// KeySize is the length of the derived key (128 bits).
	KeySize = 16
	// Iterations is the PBKDF2 round count.
	Iterations = 100_000
)

// HashPassword derives the stored digest for password and salt using
// PBKDF2-HMAC-SHA256.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeySize, sha256.New)
}

// NewSalt returns SaltSize bytes from crypto/rand.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// matches compares in constant time for equal-length inputs.
func matches(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
