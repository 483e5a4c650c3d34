// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate is returned when attempting to insert a record that already exists.
var ErrDuplicate = errors.New("duplicate record")

// ErrUnsupportedType is returned for database types other than sqlite,
// postgres and mysql.
var ErrUnsupportedType = errors.New("unsupported database type")

// MapDBError maps driver-specific unique constraint violations to
// ErrDuplicate. The driver error stays in the chain. The mapping is
// string based so this file does not import the SQL drivers.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry (1062), Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}
