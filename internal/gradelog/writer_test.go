// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package gradelog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
)

var fixed = time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

func newTestWriter(t *testing.T) (*Writer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewWriter(fs, "/results", WithClock(FixedClock{T: fixed})), fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestAppend_FirstRecordWritesHeader(t *testing.T) {
	w, fs := newTestWriter(t)
	rec := Record{Username: "bob", Image: "S1.tif", Primary: 3, Secondary: 4, X: "10.0", Y: "20.0"}
	if err := w.Append(rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := readFile(t, fs, "/results/Grading_result_bob.csv")
	want := "Date&Time,User,Image name,PrimaryGrade,SecondaryGrade,xcoord,ycoord,Comment\n" +
		"2026-03-14 09:26:53,bob,S1.tif,3,4,10.0,20.0,\n"
	if got != want {
		t.Fatalf("file content mismatch\n got: %q\nwant: %q", got, want)
	}
	if lines := strings.Count(got, "\n"); lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
}

func TestAppend_NRecordsOneHeader(t *testing.T) {
	w, fs := newTestWriter(t)
	const n = 5
	for i := 0; i < n; i++ {
		if err := w.Append(Record{Username: "carol", Image: fmt.Sprintf("S%d.tif", i)}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	got := readFile(t, fs, w.Path("carol"))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != n+1 {
		t.Fatalf("expected %d lines, got %d", n+1, len(lines))
	}
	if strings.Count(got, "Date&Time") != 1 {
		t.Fatalf("header must appear once:\n%s", got)
	}
	for i, l := range lines[1:] {
		if !strings.Contains(l, fmt.Sprintf("S%d.tif", i)) {
			t.Fatalf("row %d out of order: %q", i, l)
		}
	}
}

func TestAppend_ExistingFileKeepsContent(t *testing.T) {
	w, fs := newTestWriter(t)
	prior := "Date&Time,User,Image name,PrimaryGrade,SecondaryGrade,xcoord,ycoord,Comment\n" +
		"2025-01-01 00:00:00,dave,S9.tif,5,5,1,2,old\n"
	if err := afero.WriteFile(fs, w.Path("dave"), []byte(prior), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Append(Record{Username: "dave", Image: "S10.tif", Primary: 4}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got := readFile(t, fs, w.Path("dave"))
	if !strings.HasPrefix(got, prior) {
		t.Fatalf("existing content modified:\n%s", got)
	}
	if strings.Count(got, "Date&Time") != 1 {
		t.Fatalf("header rewritten:\n%s", got)
	}
}

func TestAppend_EmptyFileGetsHeader(t *testing.T) {
	w, fs := newTestWriter(t)
	if err := fs.MkdirAll("/results", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, w.Path("erin"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Append(Record{Username: "erin", Image: "S1.tif"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got := readFile(t, fs, w.Path("erin"))
	if !strings.HasPrefix(got, "Date&Time,") {
		t.Fatalf("expected header first, got %q", got)
	}
}

func TestAppend_UnsetFieldsAreEmpty(t *testing.T) {
	w, fs := newTestWriter(t)
	if err := w.Append(Record{Username: "frank", Image: "S2.tif", Comment: "needs, review"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got := readFile(t, fs, w.Path("frank"))
	if !strings.Contains(got, "2026-03-14 09:26:53,frank,S2.tif,,,,,\"needs, review\"\n") {
		t.Fatalf("unexpected row:\n%s", got)
	}
}

func TestAppend_ExplicitTimestampKept(t *testing.T) {
	w, fs := newTestWriter(t)
	ts := time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local)
	if err := w.Append(Record{Timestamp: ts, Username: "gina", Image: "S1.tif"}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, fs, w.Path("gina")); !strings.Contains(got, "2024-12-31 23:59:59,gina") {
		t.Fatalf("timestamp not preserved:\n%s", got)
	}
}

func TestAppend_InvalidRecord(t *testing.T) {
	w, fs := newTestWriter(t)
	cases := []struct {
		name string
		rec  Record
	}{
		{"missing user", Record{Image: "S1.tif"}},
		{"missing image", Record{Username: "bob"}},
		{"bad primary", Record{Username: "bob", Image: "S1.tif", Primary: 7}},
		{"bad secondary", Record{Username: "bob", Image: "S1.tif", Secondary: 1}},
		{"path in user", Record{Username: "../bob", Image: "S1.tif"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := w.Append(tc.rec)
			if !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
	if ok, _ := afero.DirExists(fs, "/results"); ok {
		t.Fatalf("invalid records must not touch the filesystem")
	}
}

func TestAppend_ReadOnlyFilesystem(t *testing.T) {
	w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/results")
	err := w.Append(Record{Username: "bob", Image: "S1.tif"})
	var fsErr *FileSystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected *FileSystemError, got %T: %v", err, err)
	}
	if fsErr.Op != "mkdir" || fsErr.Path != "/results" {
		t.Fatalf("unexpected error detail: %+v", fsErr)
	}
	if fsErr.Unwrap() == nil {
		t.Fatalf("FileSystemError must carry its cause")
	}
}

func TestAppend_ConcurrentAppendsSerialized(t *testing.T) {
	w, fs := newTestWriter(t)
	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := w.Append(Record{Username: "hank", Image: fmt.Sprintf("S%d.tif", i)}); err != nil {
				t.Errorf("Append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()
	got := readFile(t, fs, w.Path("hank"))
	if c := strings.Count(got, "\n"); c != n+1 {
		t.Fatalf("expected %d lines, got %d", n+1, c)
	}
	if strings.Count(got, "Date&Time") != 1 {
		t.Fatalf("header must appear once")
	}
}

func TestPath(t *testing.T) {
	w := NewWriter(afero.NewMemMapFs(), "Results")
	if got, want := w.Path("alice"), filepath.Join("Results", "Grading_result_alice.csv"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestReadAll(t *testing.T) {
	w, _ := newTestWriter(t)
	recs, err := w.ReadAll("nobody")
	if err != nil || len(recs) != 0 {
		t.Fatalf("missing log: got %v, %v", recs, err)
	}

	in := []Record{
		{Username: "ivy", Image: "S1.tif", Primary: 3, Secondary: 4, X: "1.5", Y: "2.5"},
		{Username: "ivy", Image: "S2.tif", Primary: 5, Comment: "multi\nline"},
	}
	for _, r := range in {
		if err := w.Append(r); err != nil {
			t.Fatal(err)
		}
	}
	recs, err = w.ReadAll("ivy")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(recs))
	}
	for i, r := range recs {
		want := in[i]
		want.Timestamp = fixed
		if !r.Timestamp.Equal(want.Timestamp) {
			t.Fatalf("record %d timestamp %v, want %v", i, r.Timestamp, want.Timestamp)
		}
		r.Timestamp = want.Timestamp
		if r != want {
			t.Fatalf("record %d = %+v, want %+v", i, r, want)
		}
	}
}

func TestReadCSV_LegacyRowsWithoutComment(t *testing.T) {
	data := "Date&Time,User,Image name,PrimaryGrade,SecondaryGrade,xcoord,ycoord\n" +
		"2020-05-01 12:00:00,jo,S3.tif,4, ,3.0,4.0\n"
	recs, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(recs) != 1 || recs[0].Primary != 4 || recs[0].Secondary != GradeUnset || recs[0].Comment != "" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestReadCSV_BadGrade(t *testing.T) {
	data := "2020-05-01 12:00:00,jo,S3.tif,9,,,,\n"
	if _, err := ReadCSV(strings.NewReader(data)); !errors.Is(err, ErrInvalidGrade) {
		t.Fatalf("expected ErrInvalidGrade, got %v", err)
	}
}
