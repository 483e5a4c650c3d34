// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for pathograde.
//
// Usage:
//
//	go run . [flags]
//	./pathograde [flags]
//
// Without a subcommand the interactive grading TUI starts. See --help.
package main

import (
	"os"

	"github.com/pathogui/pathograde/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}
