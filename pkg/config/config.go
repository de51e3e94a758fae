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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/pkg/collapsible"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = ".codemodrc.yaml"

// DefaultShared is the shared asset prefix written for __SHARED__
const DefaultShared = "../../shared/"

var (
	DefaultInclude = []string{"**/*.tsx", "**/*.jsx"}
	DefaultExclude = []string{"**/node_modules/**"}
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎨 Fallback is the icon and theme used when no keyword rule matches
type Fallback struct {
	Icon  string `json:"icon" yaml:"icon" hcl:"icon"`
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty" hcl:"theme,optional"`
}

// 🔄 Replacement is one exact (from, to) pair of the literal replacer
type Replacement struct {
	From           string `json:"from" yaml:"from"`
	To             string `json:"to" yaml:"to"`
	FileFilterGlob string `json:"file_filter_glob,omitempty" yaml:"file_filter_glob,omitempty"`
}

// 🔧 ReplaceArgs configures the replace command
type ReplaceArgs struct {
	Files []string      `json:"files,omitempty" yaml:"files,omitempty"` // explicit files, discovery otherwise
	Rules []Replacement `json:"rules" yaml:"rules"`
}

// 🏗️ GenerateArgs configures the generate command
type GenerateArgs struct {
	Entries   string   `json:"entries" yaml:"entries"`     // JSON file with [{"id": ...}]
	Templates []string `json:"templates" yaml:"templates"` // template files, written under each entry
	Output    string   `json:"output" yaml:"output"`
	Shared    string   `json:"shared,omitempty" yaml:"shared,omitempty"`
	Year      int      `json:"year,omitempty" yaml:"year,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Files        []string           `json:"files,omitempty" yaml:"files,omitempty"`
	Root         string             `json:"root,omitempty" yaml:"root,omitempty"`
	Include      []string           `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude      []string           `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	DryRun       bool               `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Concurrency  int                `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	KeywordRules []collapsible.Rule `json:"keyword_rules,omitempty" yaml:"keyword_rules,omitempty"`
	Fallback     *Fallback          `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Replace      *ReplaceArgs       `json:"replace,omitempty" yaml:"replace,omitempty"`
	Generate     *GenerateArgs      `json:"generate,omitempty" yaml:"generate,omitempty"`

	location string // file the config was loaded from, "" for defaults
}

// 🏭 Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	// defaults never fail validation
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// discovery root is relative to the config file
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads path, falling back to Default when path is the default
// config file and it does not exist
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	if path == DefaultPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
	}
	return Load(ctx, path)
}

// Location returns the file the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if cfg.Include == nil {
		cfg.Include = append([]string(nil), DefaultInclude...)
	}
	if cfg.Exclude == nil {
		cfg.Exclude = append([]string(nil), DefaultExclude...)
	}

	switch {
	case cfg.Concurrency < 0:
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	case cfg.Concurrency == 0:
		cfg.Concurrency = 1
	}

	if cfg.KeywordRules != nil && len(cfg.KeywordRules) == 0 {
		return errors.Errorf("keyword_rules must not be empty")
	}
	if cfg.KeywordRules != nil || cfg.Fallback != nil {
		opts := cfg.MigrateOptions()
		if _, err := collapsible.New(opts); err != nil {
			return errors.Errorf("keyword_rules: %w", err)
		}
	}

	if cfg.Replace != nil {
		for i, r := range cfg.Replace.Rules {
			if r.From == "" {
				return errors.Errorf("replace.rules[%d].from is required", i)
			}
		}
	}

	if g := cfg.Generate; g != nil {
		if g.Entries == "" {
			return errors.Errorf("generate.entries is required")
		}
		if len(g.Templates) == 0 {
			return errors.Errorf("generate.templates is required")
		}
		if g.Output == "" {
			return errors.Errorf("generate.output is required")
		}
		if g.Shared == "" {
			g.Shared = DefaultShared
		}
		if g.Year == 0 {
			g.Year = time.Now().Year()
		}
	}

	return nil
}

// 🧩 MigrateOptions converts the keyword rules into migrator options
func (cfg *Config) MigrateOptions() collapsible.Options {
	opts := collapsible.Options{Rules: cfg.KeywordRules}
	if cfg.Fallback != nil {
		opts.Fallback = &collapsible.Classification{Icon: cfg.Fallback.Icon, Theme: cfg.Fallback.Theme}
	}
	return opts
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	if len(cfg.Files) > 0 {
		return fmt.Sprintf("%d files (%s)", len(cfg.Files), mode)
	}
	return fmt.Sprintf("%s [%s] -[%s] (%s)", cfg.Root, strings.Join(cfg.Include, " "), strings.Join(cfg.Exclude, " "), mode)
}
