// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package app wires the configured services together for the CLI and TUI.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/pathogui/pathograde/internal/config"
	"github.com/pathogui/pathograde/internal/credentials"
	"github.com/pathogui/pathograde/internal/gradelog"
	"github.com/pathogui/pathograde/internal/images"
	"github.com/spf13/afero"
)

// Services bundles the long-lived handles of one process.
type Services struct {
	Config      config.Config
	FS          afero.Fs
	Credentials *credentials.Store
	GradeLog    *gradelog.Writer
}

// New opens the credential store named by cfg and prepares the grading log
// writer. A nil fs means the OS filesystem.
func New(cfg config.Config, fs afero.Fs) (*Services, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	store, err := credentials.Open(cfg.Database.Type, cfg.Database.Dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return &Services{
		Config:      cfg,
		FS:          fs,
		Credentials: store,
		GradeLog:    gradelog.NewWriter(fs, cfg.Results.Dir),
	}, nil
}

// Images lists the configured image directory.
func (s *Services) Images() ([]string, error) {
	prefix, ext := s.Config.Images.Prefix, s.Config.Images.Extension
	if ext == "" {
		ext = images.DefaultExt
	}
	dir := s.Config.Images.Dir
	if dir == "" {
		dir = images.DefaultDir
	}
	return images.Discover(s.FS, dir, prefix, ext)
}

// ImagePath joins the configured image directory and name.
func (s *Services) ImagePath(name string) string {
	dir := s.Config.Images.Dir
	if dir == "" {
		dir = images.DefaultDir
	}
	return filepath.Join(dir, name)
}

// Close releases the credential store. It is safe to call more than once.
func (s *Services) Close() error {
	if s == nil || s.Credentials == nil {
		return nil
	}
	return s.Credentials.Close()
}
