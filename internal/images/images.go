// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package images enumerates the slide images offered for grading.
package images

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"path/filepath"
	"sort"
	"strings"

	"github.com/pathogui/pathograde/internal/logging"
	"github.com/spf13/afero"
	_ "golang.org/x/image/tiff" // register decoder
)

// Defaults used when no configuration overrides them.
const (
	DefaultDir    = "../Data"
	DefaultPrefix = "S"
	DefaultExt    = ".tif"
)

// Info describes one image file.
type Info struct {
	Name   string
	Path   string
	Size   int64
	Width  int
	Height int
	Format string
}

// Discover lists the regular files in dir whose names start with prefix and
// end with ext. The extension match ignores case. Names are returned sorted.
func Discover(fs afero.Fs, dir, prefix, ext string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory %s: %w", dir, err)
	}
	ext = strings.ToLower(ext)
	var names []string
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ext) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	logging.Debugf("discovered %d images in %s", len(names), dir)
	return names, nil
}

// Describe stats path and decodes its header for pixel dimensions. An
// undecodable image is not an error; its dimensions stay zero.
func Describe(fs afero.Fs, path string) (Info, error) {
	st, err := fs.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", path, err)
	}
	info := Info{Name: filepath.Base(path), Path: path, Size: st.Size()}

	f, err := fs.Open(path)
	if err != nil {
		return info, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		logging.Debugf("cannot decode %s: %v", path, err)
		return info, nil
	}
	info.Width, info.Height, info.Format = cfg.Width, cfg.Height, format
	return info, nil
}

// Title is the heading shown above an image.
func Title(name string) string {
	return "Biopsy name: " + strings.TrimSuffix(name, filepath.Ext(name))
}
