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

package operation

import (
	"bytes"
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/pkg/config"
	"github.com/walteh/codemodrc/pkg/status"
	"github.com/walteh/codemodrc/pkg/text"
)

var _ Operation = (*replaceOperation)(nil)

// 🔄 NewReplaceOperation creates the literal replacement operation
func NewReplaceOperation(opts Options, rules []text.ReplacementRule) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	replacer := text.NewSimpleTextReplacer()
	if len(rules) == 0 {
		return nil, errors.Errorf("at least one replacement rule is required")
	}
	if err := replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return &replaceOperation{BaseOperation: base, replacer: replacer, rules: rules}, nil
}

// 🔄 replaceOperation applies an ordered table of exact replacements
type replaceOperation struct {
	BaseOperation
	replacer text.TextReplacer
	rules    []text.ReplacementRule
}

func (op *replaceOperation) Name() string { return "replace" }

// 📄 ProcessFile applies the rules whose file filter matches path
func (op *replaceOperation) ProcessFile(ctx context.Context, path string) status.FileReport {
	r := status.FileReport{Path: path}

	rules := text.RulesFor(op.relative(path), op.rules)
	if len(rules) == 0 {
		r.Status = status.StatusNoMatch
		return r
	}

	content, err := op.FileMgr.ReadFile(ctx, path)
	if err != nil {
		return failed(r, errors.Errorf("reading %s: %w", path, err))
	}

	res, err := op.replacer.ReplaceText(ctx, bytes.NewReader(content), rules)
	if err != nil {
		return failed(r, errors.Errorf("replacing in %s: %w", path, err))
	}
	r.Replacements = res.ReplacementCount

	switch {
	case res.ReplacementCount == 0:
		r.Status = status.StatusNoMatch
		return r
	case !res.WasModified:
		r.Status = status.StatusUnchanged
		return r
	}

	r.Status = status.StatusMigrated
	op.commit(ctx, &r, string(content), string(res.ModifiedContent))
	return r
}

// ReplaceRules converts configured replacements into replacer rules
func ReplaceRules(replacements []config.Replacement) []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(replacements))
	for _, r := range replacements {
		rules = append(rules, text.ReplacementRule{FromText: r.From, ToText: r.To, FileFilterGlob: r.FileFilterGlob})
	}
	return rules
}
