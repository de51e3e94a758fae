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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestFileStatus_String(t *testing.T) {
	tests := []struct {
		status FileStatus
		want   string
	}{
		{StatusMigrated, "migrated"},
		{StatusUnchanged, "unchanged"},
		{StatusNoMatch, "no-match"},
		{StatusSkipped, "skipped"},
		{StatusFailed, "failed"},
		{StatusCreated, "created"},
		{StatusUnknown, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestSummarize(t *testing.T) {
	reports := []FileReport{
		{Path: "a.tsx", Status: StatusMigrated, BlocksFound: 3, BlocksConverted: 2, Warnings: []string{"line 4: x"}},
		{Path: "b.tsx", Status: StatusNoMatch},
		{Path: "c.tsx", Status: StatusSkipped, BlocksFound: 1, BlocksConverted: 1},
		{Path: "d.tsx", Status: StatusFailed, Err: errors.New("boom")},
		{Path: "e.tsx", Status: StatusUnchanged, BlocksFound: 1},
	}

	s := Summarize(reports)
	assert.Equal(t, Summary{
		Files:           5,
		Migrated:        1,
		Unchanged:       1,
		NoMatch:         1,
		Skipped:         1,
		Failed:          1,
		BlocksFound:     5,
		BlocksConverted: 3,
		Warnings:        1,
	}, s)
	assert.True(t, s.HasFailures())
	assert.False(t, Summarize(reports[:3]).HasFailures())
}

func TestManager_Files(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(t *testing.T, dir string)
		operation func(t *testing.T, mgr *Manager, dir string)
	}{
		{
			name: "write_atomic_replaces_content_and_keeps_mode",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "page.tsx"), []byte("old"), 0600))
			},
			operation: func(t *testing.T, mgr *Manager, dir string) {
				require.NoError(t, mgr.WriteFileAtomic(ctx, "page.tsx", []byte("new")))

				data, err := os.ReadFile(filepath.Join(dir, "page.tsx"))
				require.NoError(t, err)
				assert.Equal(t, "new", string(data))

				fi, err := os.Stat(filepath.Join(dir, "page.tsx"))
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

				_, err = os.Stat(filepath.Join(dir, "page.tsx.tmp"))
				assert.True(t, os.IsNotExist(err), "temp file should be gone")
			},
		},
		{
			name: "write_creates_parent_directories",
			operation: func(t *testing.T, mgr *Manager, dir string) {
				require.NoError(t, mgr.WriteFile(ctx, filepath.Join("out", "acme", "index.html"), []byte("<html>")))

				exists, err := mgr.FileExists(ctx, filepath.Join("out", "acme", "index.html"))
				require.NoError(t, err)
				assert.True(t, exists)
			},
		},
		{
			name: "absolute_paths_bypass_base_dir",
			operation: func(t *testing.T, mgr *Manager, dir string) {
				abs := filepath.Join(t.TempDir(), "x.tsx")
				require.NoError(t, os.WriteFile(abs, []byte("x"), 0644))

				data, err := mgr.ReadFile(ctx, abs)
				require.NoError(t, err)
				assert.Equal(t, "x", string(data))
			},
		},
		{
			name: "read_missing_file",
			operation: func(t *testing.T, mgr *Manager, dir string) {
				_, err := mgr.ReadFile(ctx, "missing.tsx")
				require.Error(t, err)
				assert.Contains(t, err.Error(), "reading file")
				assert.True(t, errors.Is(err, os.ErrNotExist))

				exists, err := mgr.FileExists(ctx, "missing.tsx")
				require.NoError(t, err)
				assert.False(t, exists)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			mgr := New(dir)
			assert.Equal(t, filepath.Clean(dir), mgr.BaseDir())
			tt.operation(t, mgr, dir)
		})
	}
}

func TestManager_Track(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	New(t.TempDir()).Track(ctx, FileReport{Path: "a.tsx", Status: StatusMigrated, BlocksFound: 2, BlocksConverted: 2})

	out := buf.String()
	assert.Contains(t, out, `"path":"a.tsx"`)
	assert.Contains(t, out, `"status":"migrated"`)
	assert.Contains(t, out, `"blocks_converted":2`)
	assert.Contains(t, out, "Migrated a.tsx (2/2 blocks)")
}
