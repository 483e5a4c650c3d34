// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package gradelog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pathogui/pathograde/internal/logging"
	"github.com/spf13/afero"
)

// FilePrefix and FileExt make up a log file name around the username.
const (
	FilePrefix = "Grading_result_"
	FileExt    = ".csv"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Writer appends records to per-user CSV files under a results directory.
// It is safe for concurrent use; appends to the same file are serialized.
type Writer struct {
	fs    afero.Fs
	dir   string
	clock Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the clock used for records without a timestamp.
func WithClock(c Clock) Option {
	return func(w *Writer) { w.clock = c }
}

// NewWriter returns a Writer rooted at dir on fs. A nil fs means the OS
// filesystem.
func NewWriter(fs afero.Fs, dir string, opts ...Option) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	w := &Writer{fs: fs, dir: dir, clock: SystemClock{}, locks: map[string]*sync.Mutex{}}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Dir returns the results directory.
func (w *Writer) Dir() string { return w.dir }

// Path returns the log file of username.
func (w *Writer) Path(username string) string {
	return filepath.Join(w.dir, FilePrefix+username+FileExt)
}

func (w *Writer) lockFor(path string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[path]
	if !ok {
		l = &sync.Mutex{}
		w.locks[path] = l
	}
	return l
}

// Append writes rec as one row of its user's log, writing the header
// first when the file is new or empty.
func (w *Writer) Append(rec Record) error {
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.clock.Now()
	}

	path := w.Path(rec.Username)
	l := w.lockFor(path)
	l.Lock()
	defer l.Unlock()

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return fsError("mkdir", w.dir, err)
	}
	f, err := w.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fsError("open", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fsError("stat", path, err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		logging.Debugf("creating grading log %s", path)
		if err := cw.Write(Header); err != nil {
			_ = f.Close()
			return fsError("write", path, err)
		}
	}
	if err := cw.Write(rec.Row()); err != nil {
		_ = f.Close()
		return fsError("write", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fsError("flush", path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fsError("sync", path, err)
	}
	if err := f.Close(); err != nil {
		return fsError("close", path, err)
	}
	logging.Debugf("appended grading of %s by %s to %s", rec.Image, rec.Username, path)
	return nil
}

// ReadAll parses the log of username. A missing file yields no records.
func (w *Writer) ReadAll(username string) ([]Record, error) {
	path := w.Path(username)
	l := w.lockFor(path)
	l.Lock()
	defer l.Unlock()

	f, err := w.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, fsError("open", path, err)
	}
	defer func() { _ = f.Close() }()

	recs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, nil
}

// ReadCSV parses rows in Header order from r. A leading header row is skipped.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == Header[0] {
			continue
		}
		rec, err := ParseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// WriteCSV writes the header followed by recs to w.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
