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

// Package discover finds the source files a run operates on.
package discover

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔎 Options selects files under Root
type Options struct {
	Root    string
	Include []string
	Exclude []string
}

// 📂 Files returns the files under opts.Root matching any include pattern and no
// exclude pattern. Paths are joined with Root, sorted and unique.
func Files(ctx context.Context, opts Options) ([]string, error) {
	return FilesFS(ctx, os.DirFS(opts.Root), opts)
}

// FilesFS is Files over an arbitrary file system rooted at opts.Root
func FilesFS(ctx context.Context, fsys fs.FS, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if len(opts.Include) == 0 {
		return nil, errors.Errorf("at least one include pattern is required")
	}
	for _, p := range append(append([]string(nil), opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid pattern %q", p)
		}
	}

	seen := map[string]bool{}
	var rels []string
	for _, pattern := range opts.Include {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("discovering files: %w", err)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true
			if excl, ok := matchesAny(opts.Exclude, rel); ok {
				logger.Debug().Str("path", rel).Str("pattern", excl).Msg("file excluded by pattern")
				continue
			}
			rels = append(rels, rel)
		}
	}

	sort.Strings(rels)
	out := make([]string, 0, len(rels))
	for _, rel := range rels {
		out = append(out, filepath.Join(opts.Root, filepath.FromSlash(rel)))
	}

	logger.Debug().Str("root", opts.Root).Int("files", len(out)).Msg("discovered files")
	return out, nil
}

// 🧹 Explicit cleans and deduplicates explicitly named files, keeping their order
func Explicit(files []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(files))
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		f = filepath.Clean(f)
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func matchesAny(patterns []string, rel string) (string, bool) {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return pattern, true
		}
	}
	return "", false
}
