// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// Version is set at link time via
// `-ldflags -X github.com/pathogui/pathograde/buildvars.Version=...`.
// It is "dev" for local or development builds.
var Version = "dev"

// Commit is the short commit SHA, set at link time.
var Commit = "dev"

// Date is the RFC3339 build timestamp, set at link time.
var Date = ""

// VersionOrDefault returns Version if it was set by the linker, otherwise def.
func VersionOrDefault(def string) string {
	if len(Version) > 0 && Version != "dev" {
		return Version
	}
	return def
}
