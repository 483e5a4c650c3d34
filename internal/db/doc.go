// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db opens the relational store behind the credential table.
// It hides driver selection (SQLite, PostgreSQL, MySQL), connection pool
// tuning and embedded schema migrations behind a single Open call that
// returns a ready *bun.DB.
package db // import "github.com/pathogui/pathograde/internal/db"
