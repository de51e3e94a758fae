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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/pkg/collapsible"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. Expressions may read env.<NAME>.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Files        []string           `hcl:"files,optional"`
		Root         string             `hcl:"root,optional"`
		Include      []string           `hcl:"include,optional"`
		Exclude      []string           `hcl:"exclude,optional"`
		DryRun       bool               `hcl:"dry_run,optional"`
		Concurrency  int                `hcl:"concurrency,optional"`
		KeywordRules []collapsible.Rule `hcl:"keyword_rule,block"`
		Fallback     *Fallback          `hcl:"fallback,block"`
		Replace      *struct {
			Files []string `hcl:"files,optional"`
			Rules []struct {
				From           string `hcl:"from"`
				To             string `hcl:"to"`
				FileFilterGlob string `hcl:"file_filter_glob,optional"`
			} `hcl:"rule,block"`
		} `hcl:"replace,block"`
		Generate *struct {
			Entries   string   `hcl:"entries"`
			Templates []string `hcl:"templates"`
			Output    string   `hcl:"output"`
			Shared    string   `hcl:"shared,optional"`
			Year      int      `hcl:"year,optional"`
		} `hcl:"generate,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Files:        hclCfg.Files,
		Root:         hclCfg.Root,
		Include:      hclCfg.Include,
		Exclude:      hclCfg.Exclude,
		DryRun:       hclCfg.DryRun,
		Concurrency:  hclCfg.Concurrency,
		KeywordRules: hclCfg.KeywordRules,
		Fallback:     hclCfg.Fallback,
	}
	if len(cfg.KeywordRules) == 0 {
		// zero keyword_rule blocks means the default table
		cfg.KeywordRules = nil
	}

	if hclCfg.Replace != nil {
		cfg.Replace = &ReplaceArgs{Files: hclCfg.Replace.Files}
		for _, r := range hclCfg.Replace.Rules {
			cfg.Replace.Rules = append(cfg.Replace.Rules, Replacement{
				From:           r.From,
				To:             r.To,
				FileFilterGlob: r.FileFilterGlob,
			})
		}
	}

	if g := hclCfg.Generate; g != nil {
		cfg.Generate = &GenerateArgs{
			Entries:   g.Entries,
			Templates: g.Templates,
			Output:    g.Output,
			Shared:    g.Shared,
			Year:      g.Year,
		}
	}

	return cfg, nil
}

// envObject exposes the process environment to HCL expressions
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}
