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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	parsers = nil

	mockParser := &struct {
		Parser
	}{}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{
			name:     "yaml_file",
			filename: ".codemodrc.yaml",
			want:     &YAMLParser{},
		},
		{
			name:     "yml_file",
			filename: "config.yml",
			want:     &YAMLParser{},
		},
		{
			name:     "hcl_file",
			filename: "config.hcl",
			want:     &HCLParser{},
		},
		{
			name:     "json_file",
			filename: "config.JSON",
			want:     &JSONParser{},
		},
		{
			name:     "unknown_extension",
			filename: "config.txt",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should not find a parser")
				return
			}
			require.NotNil(t, got, "should find a parser")
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	t.Setenv("CODEMODRC_TEST_ROOT", "apps/web")

	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full_config",
			config: `
root        = env.CODEMODRC_TEST_ROOT
include     = ["**/*.tsx"]
dry_run     = true
concurrency = 8

keyword_rule {
  keywords = ["pkce", "verifier"]
  icon     = "lock"
  theme    = "security"
}

keyword_rule {
  keywords = ["overview"]
  icon     = "book"
}

fallback {
  icon = "settings"
}

replace {
  rule {
    from = "Authorization Code Flow"
    to   = "Authorization Code"
  }
  rule {
    from             = "v1"
    to               = "v2"
    file_filter_glob = "**/*.md"
  }
}

generate {
  entries   = "customers.json"
  templates = ["index.html"]
  output    = "site"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "apps/web", cfg.Root, "root should read the environment")
				assert.Equal(t, []string{"**/*.tsx"}, cfg.Include)
				assert.Nil(t, cfg.Exclude, "parsers do not fill defaults")
				assert.True(t, cfg.DryRun)
				assert.Equal(t, 8, cfg.Concurrency)

				require.Len(t, cfg.KeywordRules, 2)
				assert.Equal(t, []string{"pkce", "verifier"}, cfg.KeywordRules[0].Keywords)
				assert.Equal(t, "security", cfg.KeywordRules[0].Theme)
				assert.Equal(t, "", cfg.KeywordRules[1].Theme)

				require.NotNil(t, cfg.Fallback)
				assert.Equal(t, "settings", cfg.Fallback.Icon)

				require.NotNil(t, cfg.Replace)
				require.Len(t, cfg.Replace.Rules, 2)
				assert.Equal(t, Replacement{From: "Authorization Code Flow", To: "Authorization Code"}, cfg.Replace.Rules[0])
				assert.Equal(t, "**/*.md", cfg.Replace.Rules[1].FileFilterGlob)

				require.NotNil(t, cfg.Generate)
				assert.Equal(t, "site", cfg.Generate.Output)
				assert.Equal(t, 0, cfg.Generate.Year, "year is filled by Validate")
			},
		},
		{
			name:   "no_rules",
			config: `root = "src"`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "src", cfg.Root)
				assert.Nil(t, cfg.KeywordRules, "no keyword_rule blocks means the default table")
				assert.Nil(t, cfg.Replace)
				assert.Nil(t, cfg.Generate)
			},
		},
		{
			name:        "unknown_attribute",
			config:      `colour = "blue"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "syntax_error",
			config:      `root = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &HCLParser{}
			cfg, err := p.Parse(context.Background(), []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err, "Parse should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}
			require.NoError(t, err, "Parse should succeed")
			tt.check(t, cfg)
		})
	}
}

func TestLoad_HCLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codemodrc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
root = "src"

keyword_rule {
  keywords = ["pkce"]
  icon     = "lock"
}
`), 0644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err, "Load should succeed")
	assert.Equal(t, filepath.Join(dir, "src"), cfg.Root)
	assert.Equal(t, 1, cfg.Concurrency)
	require.Len(t, cfg.KeywordRules, 1)
	assert.Equal(t, "lock", cfg.KeywordRules[0].Icon)
}
