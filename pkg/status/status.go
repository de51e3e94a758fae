// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus is the outcome of processing one file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusMigrated             // content changed (written unless dry-run)
	StatusUnchanged            // candidates found, nothing to rewrite
	StatusNoMatch              // no candidate blocks, file untouched
	StatusSkipped              // blocks converted but the file could not be completed
	StatusFailed               // file could not be read or written
	StatusCreated              // file did not exist before
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusMigrated:
		return "migrated"
	case StatusUnchanged:
		return "unchanged"
	case StatusNoMatch:
		return "no-match"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusCreated:
		return "created"
	default:
		return "unknown"
	}
}

// 📄 FileReport is the per-file record produced by every operation
type FileReport struct {
	Path            string
	Status          FileStatus
	BlocksFound     int
	BlocksConverted int
	Replacements    int      // literal replacements applied
	Warnings        []string // one per unparsed block
	Changed         bool
	Diff            string // unified diff, dry-run only
	Err             error
}

// 📈 Summary aggregates the reports of one run
type Summary struct {
	Files           int
	Migrated        int
	Unchanged       int
	NoMatch         int
	Skipped         int
	Failed          int
	Created         int
	BlocksFound     int
	BlocksConverted int
	Replacements    int
	Warnings        int
}

// Add folds one report into the summary
func (s *Summary) Add(r FileReport) {
	s.Files++
	s.BlocksFound += r.BlocksFound
	s.BlocksConverted += r.BlocksConverted
	s.Replacements += r.Replacements
	s.Warnings += len(r.Warnings)
	switch r.Status {
	case StatusMigrated:
		s.Migrated++
	case StatusUnchanged:
		s.Unchanged++
	case StatusNoMatch:
		s.NoMatch++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	case StatusCreated:
		s.Created++
	}
}

// Summarize aggregates reports
func Summarize(reports []FileReport) Summary {
	var s Summary
	for _, r := range reports {
		s.Add(r)
	}
	return s
}

// HasFailures reports whether any file failed
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// 💾 FileManager handles all file system operations
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	FileExists(ctx context.Context, path string) (bool, error)

	// WriteFile creates parent directories, then writes atomically
	WriteFile(ctx context.Context, path string, content []byte) error
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

var _ FileManager = (*Manager)(nil)

// 🔧 Manager is the local disk FileManager. Relative paths resolve against baseDir.
type Manager struct {
	baseDir   string
	formatter FileFormatter
}

// 🏭 New creates a new file manager rooted at baseDir
func New(baseDir string) *Manager {
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		formatter: NewDefaultFileFormatter(),
	}
}

// BaseDir returns the directory relative paths resolve against
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 getAbsPath returns the absolute path for a given path
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	return m.WriteFileAtomic(ctx, path, content)
}

// WriteFileAtomic writes content to a sibling temp file and renames it over path.
// An existing file keeps its permissions.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)
	tempPath := absPath + ".tmp"

	mode := os.FileMode(0644)
	if fi, err := os.Stat(absPath); err == nil {
		mode = fi.Mode().Perm()
	}

	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// Track mirrors a finished report into the context logger
func (m *Manager) Track(ctx context.Context, r FileReport) {
	logger := zerolog.Ctx(ctx)
	ev := logger.Debug()
	if r.Err != nil {
		ev = logger.Warn().Err(r.Err)
	}
	ev.Str("path", r.Path).
		Str("status", r.Status.String()).
		Int("blocks_found", r.BlocksFound).
		Int("blocks_converted", r.BlocksConverted).
		Int("warnings", len(r.Warnings)).
		Msg(m.formatter.FormatReport(r))
}
