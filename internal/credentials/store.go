// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package credentials stores reviewer accounts as salted PBKDF2 digests and
// verifies login attempts against them.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/pathogui/pathograde/internal/db"
	"github.com/pathogui/pathograde/internal/logging"
	"github.com/uptrace/bun"
)

// User maps the `users` table.
type User struct {
	bun.BaseModel `bun:"table:users"`
	Username      string `bun:"username,pk"`
	Salt          []byte `bun:"salt"`
	Hash          []byte `bun:"hash"`
}

// Store is the credential store. It is safe for concurrent use.
type Store struct {
	bun *bun.DB

	closeOnce sync.Once
	closeErr  error
	mu        sync.RWMutex
	closed    bool
}

// Open connects to the configured database and returns a ready Store.
func Open(dbType, dsn string) (*Store, error) {
	b, err := db.Open(dbType, dsn)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}

// New wraps an already migrated *bun.DB. The Store takes ownership of it.
func New(b *bun.DB) *Store {
	return &Store{bun: b}
}

func (s *Store) handle() (*bun.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.bun, nil
}

// AddUser registers username with a freshly salted hash of password.
func (s *Store) AddUser(ctx context.Context, username, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	b, err := s.handle()
	if err != nil {
		return err
	}

	exists, err := b.NewSelect().Model((*User)(nil)).Where("username = ?", username).Exists(ctx)
	if err != nil {
		return fmt.Errorf("check user %q: %w", username, err)
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrDuplicateUser, username)
	}

	salt, err := NewSalt()
	if err != nil {
		return err
	}
	u := &User{
		Username: username,
		Salt:     salt,
		Hash:     HashPassword(password, salt),
	}
	if _, err := b.NewInsert().Model(u).Exec(ctx); err != nil {
		if mapped := db.MapDBError(err); errors.Is(mapped, db.ErrDuplicate) {
			return fmt.Errorf("%w: %q", ErrDuplicateUser, username)
		}
		return fmt.Errorf("insert user %q: %w", username, err)
	}
	logging.Debugf("credentials: added user %s", username)
	return nil
}

// VerifyUser checks password against the stored digest. It returns true on
// a match, ErrUnknownUser when the user is absent and ErrInvalidCredentials
// on a mismatch; it never returns false with a nil error.
func (s *Store) VerifyUser(ctx context.Context, username, password string) (bool, error) {
	u, err := s.lookup(ctx, username)
	if err != nil {
		return false, err
	}
	if !matches(HashPassword(password, u.Salt), u.Hash) {
		logging.Debugf("credentials: wrong password for %s", username)
		return false, ErrInvalidCredentials
	}
	return true, nil
}

func (s *Store) lookup(ctx context.Context, username string) (*User, error) {
	b, err := s.handle()
	if err != nil {
		return nil, err
	}
	u := new(User)
	err = b.NewSelect().Model(u).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logging.Debugf("credentials: unknown user %s", username)
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}
	return u, nil
}

// GetUser returns the stored record for username.
func (s *Store) GetUser(ctx context.Context, username string) (*User, error) {
	return s.lookup(ctx, username)
}

// ListUsers returns all usernames in ascending order.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	b, err := s.handle()
	if err != nil {
		return nil, err
	}
	var names []string
	if err := b.NewSelect().Model((*User)(nil)).Column("username").Order("username ASC").Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return names, nil
}

// Close releases the database handle. Further calls are no-ops.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.closeErr = s.bun.Close()
	})
	return s.closeErr
}
