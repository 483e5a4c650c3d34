// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package gradelog appends grading judgments to per-user CSV files.
// Files are append-only: rows are never rewritten or removed, and the
// header is written exactly once when a file is created or found empty.
package gradelog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the on-disk format of the Date&Time column.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the canonical column order of every grading log.
var Header = []string{"Date&Time", "User", "Image name", "PrimaryGrade", "SecondaryGrade", "xcoord", "ycoord", "Comment"}

// ErrInvalidGrade is returned by ParseGrade for values outside {unset,3,4,5}.
var ErrInvalidGrade = errors.New("grade must be empty, 3, 4 or 5")

// Grade is a Gleason-style pattern grade. The zero value means unset.
type Grade uint8

// GradeUnset marks a grade the reviewer did not choose.
const GradeUnset Grade = 0

// Grades lists the selectable values in dropdown order.
var Grades = []Grade{GradeUnset, 3, 4, 5}

// ParseGrade accepts "", " ", "3", "4" and "5".
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GradeUnset, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 3 || n > 5 {
		return GradeUnset, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	return Grade(n), nil
}

// String renders unset as the empty string.
func (g Grade) String() string {
	if g == GradeUnset {
		return ""
	}
	return strconv.Itoa(int(g))
}

// Valid reports whether g is one of Grades.
func (g Grade) Valid() bool {
	return g == GradeUnset || (g >= 3 && g <= 5)
}

// Next cycles unset → 3 → 4 → 5 → unset.
func (g Grade) Next() Grade {
	for i, v := range Grades {
		if v == g {
			return Grades[(i+1)%len(Grades)]
		}
	}
	return GradeUnset
}

// Prev cycles in the opposite direction of Next.
func (g Grade) Prev() Grade {
	for i, v := range Grades {
		if v == g {
			return Grades[(i+len(Grades)-1)%len(Grades)]
		}
	}
	return GradeUnset
}

// Record is one grading judgment.
type Record struct {
	Timestamp time.Time
	Username  string `validate:"required,max=255,excludesall=/\\:*?\"<>0x7C"`
	Image     string `validate:"required"`
	Primary   Grade  `validate:"oneof=0 3 4 5"`
	Secondary Grade  `validate:"oneof=0 3 4 5"`
	X         string
	Y         string
	Comment   string
}

// Row serializes r in Header order. Unset fields become empty strings.
func (r Record) Row() []string {
	ts := ""
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.Format(TimestampLayout)
	}
	return []string{ts, r.Username, r.Image, r.Primary.String(), r.Secondary.String(), r.X, r.Y, r.Comment}
}

// ParseRow is the inverse of Row. Rows written by older layouts without the
// Comment column are accepted.
func ParseRow(row []string) (Record, error) {
	if len(row) < len(Header)-1 {
		return Record{}, fmt.Errorf("expected at least %d columns, got %d", len(Header)-1, len(row))
	}
	var r Record
	if row[0] != "" {
		ts, err := time.ParseInLocation(TimestampLayout, row[0], time.Local)
		if err != nil {
			return Record{}, fmt.Errorf("parse timestamp %q: %w", row[0], err)
		}
		r.Timestamp = ts
	}
	r.Username = row[1]
	r.Image = row[2]
	var err error
	if r.Primary, err = ParseGrade(row[3]); err != nil {
		return Record{}, err
	}
	if r.Secondary, err = ParseGrade(row[4]); err != nil {
		return Record{}, err
	}
	r.X = row[5]
	r.Y = row[6]
	if len(row) > 7 {
		r.Comment = row[7]
	}
	return r, nil
}
