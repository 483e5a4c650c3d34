// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/pathogui/pathograde/internal/logging"

func dbLogf(format string, v ...any) {
	logging.Debugf(format, v...)
}
