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

package sitegen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/codemodrc/pkg/status"
)

const portalTpl = `<title>__COMPANY__ portal</title>
<link rel="stylesheet" href="__SHARED__portal.css">
<footer>© __YEAR__ __COMPANY__</footer>
`

const loginTpl = `<form data-company="__COMPANY__"></form>
`

func setup(t *testing.T, entries string) (string, *status.Manager) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"shared/companies.json":            entries,
		"dist/_templates/portal.tpl.html": portalTpl,
		"dist/_templates/login.tpl.html":  loginTpl,
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir, status.New(dir)
}

func options() Options {
	return Options{
		Entries:   "shared/companies.json",
		Templates: []string{"dist/_templates/portal.tpl.html", "dist/_templates/login.tpl.html"},
		Output:    "dist",
		Shared:    "../../shared/",
		Year:      2026,
	}
}

func TestGenerate(t *testing.T) {
	dir, fm := setup(t, `[{"id": "acme", "name": "Acme Corp"}, {"id": "globex"}]`)
	ctx := context.Background()

	reports, err := Generate(ctx, fm, options())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	paths := []string{}
	for _, r := range reports {
		paths = append(paths, r.Path)
		assert.Equal(t, status.StatusCreated, r.Status, r.Path)
		assert.True(t, r.Changed)
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, []string{
		filepath.Join("dist", "acme", "portal.html"),
		filepath.Join("dist", "acme", "login.html"),
		filepath.Join("dist", "globex", "portal.html"),
		filepath.Join("dist", "globex", "login.html"),
	}, paths)
	assert.Equal(t, 4, reports[0].Replacements)

	got, err := os.ReadFile(filepath.Join(dir, "dist", "acme", "portal.html"))
	require.NoError(t, err)
	assert.Equal(t, `<title>acme portal</title>
<link rel="stylesheet" href="../../shared/portal.css">
<footer>© 2026 acme</footer>
`, string(got))

	// a second run finds every page up to date
	reports, err = Generate(ctx, fm, options())
	require.NoError(t, err)
	for _, r := range reports {
		assert.Equal(t, status.StatusUnchanged, r.Status, r.Path)
		assert.False(t, r.Changed)
	}
}

func TestGenerate_DryRun(t *testing.T) {
	dir, fm := setup(t, `[{"id": "acme"}]`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist", "acme"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "acme", "login.html"), []byte("stale\n"), 0644))

	opts := options()
	opts.DryRun = true
	reports, err := Generate(context.Background(), fm, opts)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, status.StatusCreated, reports[0].Status)
	assert.Equal(t, status.StatusMigrated, reports[1].Status, "existing page that differs is updated")
	assert.Contains(t, reports[1].Diff, "-stale")
	assert.Contains(t, reports[1].Diff, `+<form data-company="acme"></form>`)

	_, err = os.Stat(filepath.Join(dir, "dist", "acme", "portal.html"))
	assert.True(t, os.IsNotExist(err), "dry-run must not write")
	got, err := os.ReadFile(filepath.Join(dir, "dist", "acme", "login.html"))
	require.NoError(t, err)
	assert.Equal(t, "stale\n", string(got))
}

func TestGenerate_SetupErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries string
		mutate  func(o *Options)
		wantErr string
	}{
		{name: "invalid_json", entries: `{"id": "acme"}`, wantErr: "parsing entries"},
		{name: "missing_id", entries: `[{"name": "Acme"}]`, wantErr: "entry 0: id is required"},
		{name: "path_in_id", entries: `[{"id": "../etc"}]`, wantErr: "is not a directory name"},
		{name: "duplicate_id", entries: `[{"id": "a"}, {"id": "a"}]`, wantErr: `entry 1: duplicate id "a"`},
		{
			name:    "missing_template",
			entries: `[{"id": "acme"}]`,
			mutate:  func(o *Options) { o.Templates = []string{"nope.tpl.html"} },
			wantErr: "reading template nope.tpl.html",
		},
		{
			name:    "missing_entries_file",
			entries: `[]`,
			mutate:  func(o *Options) { o.Entries = "nope.json" },
			wantErr: "reading entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fm := setup(t, tt.entries)
			opts := options()
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			_, err := Generate(context.Background(), fm, opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "tpl_infix", template: "dist/_templates/portal.tpl.html", want: "portal.html"},
		{name: "plain", template: "login.html", want: "login.html"},
		{name: "tpl_only_extension", template: "page.tpl", want: "page.tpl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.template))
		})
	}
}
