// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package gradelog

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned when a record misses required fields.
var ErrInvalidRecord = errors.New("invalid grading record")

// FileSystemError reports a failed directory or file operation on a log.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("grading log %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

func fsError(op, path string, err error) error {
	return &FileSystemError{Op: op, Path: path, Err: err}
}
