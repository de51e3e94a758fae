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

// Package sitegen writes one copy of a set of page templates per entry, filling
// the __COMPANY__, __SHARED__ and __YEAR__ placeholders.
package sitegen

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/pkg/status"
	"github.com/walteh/codemodrc/pkg/text"
)

// Placeholders filled in every template
const (
	PlaceholderCompany = "__COMPANY__"
	PlaceholderShared  = "__SHARED__"
	PlaceholderYear    = "__YEAR__"
)

// 🏢 Entry is one generated directory
type Entry struct {
	ID string `json:"id"`
}

// 🔧 Options configures Generate
type Options struct {
	Entries   string   // JSON file holding [{"id": ...}]
	Templates []string // template files, ".tpl" is dropped from the written name
	Output    string
	Shared    string
	Year      int
	DryRun    bool
}

// 📝 Generate writes <Output>/<id>/<template name> for every entry and template.
// Reports come back in entry then template order. Only setup problems (entries or
// templates unreadable) are returned as errors; write failures are per-file reports.
func Generate(ctx context.Context, fm status.FileManager, opts Options) ([]status.FileReport, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := LoadEntries(ctx, fm, opts.Entries)
	if err != nil {
		return nil, err
	}

	templates := make([][]byte, len(opts.Templates))
	for i, tpl := range opts.Templates {
		templates[i], err = fm.ReadFile(ctx, tpl)
		if err != nil {
			return nil, errors.Errorf("reading template %s: %w", tpl, err)
		}
	}

	replacer := text.NewSimpleTextReplacer()
	var reports []status.FileReport
	for _, entry := range entries {
		rules := Placeholders(entry, opts.Shared, opts.Year)
		for i, tpl := range opts.Templates {
			if err := ctx.Err(); err != nil {
				return reports, errors.Errorf("generating pages: %w", err)
			}

			path := filepath.Join(opts.Output, entry.ID, OutputName(tpl))
			report := status.FileReport{Path: path}

			res, err := replacer.ReplaceText(ctx, bytes.NewReader(templates[i]), rules)
			if err != nil {
				report.Status = status.StatusFailed
				report.Err = err
				reports = append(reports, report)
				continue
			}
			report.Replacements = res.ReplacementCount

			report = write(ctx, fm, report, res.ModifiedContent, opts.DryRun)
			logger.Debug().Str("path", path).Str("entry", entry.ID).Str("status", report.Status.String()).Msg("generated page")
			reports = append(reports, report)
		}
	}

	return reports, nil
}

// write compares against what is on disk and writes unless dry-run
func write(ctx context.Context, fm status.FileManager, r status.FileReport, content []byte, dryRun bool) status.FileReport {
	exists, err := fm.FileExists(ctx, r.Path)
	if err != nil {
		r.Status = status.StatusFailed
		r.Err = err
		return r
	}

	var before []byte
	if exists {
		before, err = fm.ReadFile(ctx, r.Path)
		if err != nil {
			r.Status = status.StatusFailed
			r.Err = err
			return r
		}
		if bytes.Equal(before, content) {
			r.Status = status.StatusUnchanged
			return r
		}
	}

	r.Changed = true
	r.Status = status.StatusCreated
	if exists {
		r.Status = status.StatusMigrated
	}

	if dryRun {
		r.Diff = status.UnifiedDiff(r.Path, string(before), string(content))
		return r
	}

	if err := fm.WriteFile(ctx, r.Path, content); err != nil {
		r.Status = status.StatusFailed
		r.Err = err
	}
	return r
}

// 📚 LoadEntries reads and checks the entries file
func LoadEntries(ctx context.Context, fm status.FileManager, path string) ([]Entry, error) {
	data, err := fm.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading entries: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Errorf("parsing entries %s: %w", path, err)
	}

	seen := map[string]bool{}
	for i, e := range entries {
		switch {
		case e.ID == "":
			return nil, errors.Errorf("entry %d: id is required", i)
		case e.ID == "." || e.ID == ".." || strings.ContainsAny(e.ID, `/\`):
			return nil, errors.Errorf("entry %d: id %q is not a directory name", i, e.ID)
		case seen[e.ID]:
			return nil, errors.Errorf("entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
	}
	return entries, nil
}

// Placeholders returns the replacement table for one entry
func Placeholders(e Entry, shared string, year int) []text.ReplacementRule {
	return []text.ReplacementRule{
		{FromText: PlaceholderCompany, ToText: e.ID},
		{FromText: PlaceholderShared, ToText: shared},
		{FromText: PlaceholderYear, ToText: strconv.Itoa(year)},
	}
}

// OutputName is the written file name of a template, e.g. portal.tpl.html becomes portal.html
func OutputName(template string) string {
	base := filepath.Base(template)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return strings.TrimSuffix(stem, ".tpl") + ext
}
