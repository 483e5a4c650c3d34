// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFlattenYAML(t *testing.T) {
	keys := map[string]struct{}{}
	flattenYAML("", map[string]any{
		"flat.key": "v",
		"nested":   map[string]any{"sub": "v"},
	}, keys)
	for _, k := range []string{"flat.key", "nested.sub"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("expected %s in %v", k, keys)
		}
	}
}

func TestLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "a.go"), `package pkg
func f() {
	_ = i18n.T("login.title")
	_ = i18n.T("review.saving", 1)
	_ = i18n.T("not.defined")
}`)
	writeFile(t, filepath.Join(root, "pkg", "a_test.go"), `package pkg
func g() { _ = i18n.T("only.in.tests") }`)
	writeFile(t, filepath.Join(root, "_examples", "x.go"), `package x
func h() { _ = i18n.T("ignored.key") }`)

	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "en.yaml"), `"login.title": "Login"
"review.saving": "Saving..."
"unused.key": "x"
`)
	writeFile(t, filepath.Join(locales, "de.yaml"), `"login.title": "Anmeldung"
"unused.key": "x"
`)

	r, err := lint(root, locales, "en.yaml")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if !reflect.DeepEqual(r.Undefined, []string{"not.defined"}) {
		t.Fatalf("Undefined = %v", r.Undefined)
	}
	if !reflect.DeepEqual(r.Orphaned, []string{"unused.key"}) {
		t.Fatalf("Orphaned = %v", r.Orphaned)
	}
	if !reflect.DeepEqual(r.Missing["de.yaml"], []string{"review.saving"}) {
		t.Fatalf("Missing = %v", r.Missing)
	}
	if !r.Failed() {
		t.Fatalf("expected failure")
	}
}

func TestLint_RepositoryLocalesConsistent(t *testing.T) {
	root := filepath.Join("..", "..")
	r, err := lint(root, filepath.Join(root, localesDir), primaryLocale)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if r.Failed() {
		t.Fatalf("locale problems: undefined=%v missing=%v", r.Undefined, r.Missing)
	}
}
