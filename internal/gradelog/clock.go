// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package gradelog

import "time"

// Clock provides an abstraction over time.Now for testability.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T. Tests use it for reproducible timestamps.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }
