// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks translation keys. It scans the Go sources for i18n.T()
// calls and compares them with the YAML locale files: keys used in code must
// exist in the primary locale, every locale must carry the same keys, and
// unused keys are reported as orphans.
//
// Usage:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

// Report collects the findings of one run.
type Report struct {
	Undefined []string            // used in code, absent from the primary locale
	Orphaned  []string            // in the primary locale, never used
	Missing   map[string][]string // locale file -> keys it lacks
}

// Failed reports whether the findings should fail a build. Orphans only warn.
func (r Report) Failed() bool {
	if len(r.Undefined) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	r, err := lint(projectRoot, filepath.Join(projectRoot, localesDir), primaryLocale)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printList("Undefined (used in code, not in "+primaryLocale+")", r.Undefined)
	printList("Orphaned (in "+primaryLocale+", not used in code)", r.Orphaned)
	files := make([]string, 0, len(r.Missing))
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		printList("Missing in "+f, r.Missing[f])
	}
	if r.Failed() {
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	}
	fmt.Println("✅ All translation files are consistent!")
}

func printList(title string, items []string) {
	fmt.Printf("--- %s ---\n", title)
	if len(items) == 0 {
		fmt.Println("  ✨ None found.")
		return
	}
	for _, it := range items {
		fmt.Printf("  - %s\n", it)
	}
}

func lint(root, locales, primary string) (Report, error) {
	used, err := findUsedKeys(root)
	if err != nil {
		return Report{}, fmt.Errorf("scanning sources: %w", err)
	}
	primaryKeys, err := loadKeysFromLocale(filepath.Join(locales, primary))
	if err != nil {
		return Report{}, fmt.Errorf("loading primary locale: %w", err)
	}

	r := Report{Missing: map[string][]string{}}
	r.Undefined = difference(used, primaryKeys)
	r.Orphaned = difference(primaryKeys, used)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return Report{}, err
	}
	for _, f := range files {
		if filepath.Base(f) == primary {
			continue
		}
		keys, err := loadKeysFromLocale(f)
		if err != nil {
			return Report{}, fmt.Errorf("loading %s: %w", f, err)
		}
		if missing := difference(primaryKeys, keys); len(missing) > 0 {
			r.Missing[filepath.Base(f)] = missing
		}
	}
	return r, nil
}

// difference returns the sorted keys of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

var usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

// findUsedKeys scans non-test .go files below root for i18n.T("key") calls.
// Hidden, underscore-prefixed and tools directories are skipped.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a YAML file and returns a flat set of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts nested maps into dot-separated keys. Flat dotted keys
// pass through unchanged.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
