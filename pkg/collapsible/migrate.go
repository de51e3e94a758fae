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

package collapsible

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a Migrator
type Options struct {
	Pattern  Pattern
	Rules    []Rule          // nil means DefaultRules
	Fallback *Classification // nil means DefaultFallback
}

// 📊 Result is the outcome of migrating one text
type Result struct {
	Text      string   // migrated text, equal to the input when nothing converted
	Blocks    []*Block // top-level blocks in span order
	Found     int      // blocks located, nested ones included
	Converted int      // blocks rebuilt
	Warnings  []string // one per unparsed block, in text order
	Imports   ImportChange
	Changed   bool
}

// 🚚 Migrator rewrites the deprecated pattern into the unified component
type Migrator struct {
	pattern    Pattern
	scanner    *Scanner
	extractor  *Extractor
	classifier *Classifier
	normalizer *Normalizer
	rebuilder  *Rebuilder
}

// 🏭 New creates a Migrator
func New(opts Options) (*Migrator, error) {
	if opts.Pattern == (Pattern{}) {
		opts.Pattern = DefaultPattern()
	}
	if err := opts.Pattern.Validate(); err != nil {
		return nil, errors.Errorf("validating pattern: %w", err)
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	fallback := DefaultFallback
	if opts.Fallback != nil {
		fallback = *opts.Fallback
	}
	classifier, err := NewClassifier(rules, fallback)
	if err != nil {
		return nil, errors.Errorf("creating classifier: %w", err)
	}
	return &Migrator{
		pattern:    opts.Pattern,
		scanner:    NewScanner(opts.Pattern),
		extractor:  NewExtractor(opts.Pattern),
		classifier: classifier,
		normalizer: NewNormalizer(opts.Pattern),
		rebuilder:  NewRebuilder(opts.Pattern),
	}, nil
}

// Migrate converts every parseable block of text and normalizes imports when at
// least one block converted. On error the returned Result still carries the block
// counts, but its Text is the input and must not be written.
func (m *Migrator) Migrate(ctx context.Context, text string) (*Result, error) {
	res := &Result{Text: text}
	st := &migration{layout: DetectLayout(text)}

	out, blocks := m.migrateRegion(ctx, st, text, 0)
	res.Blocks = blocks
	res.Found = st.found
	res.Converted = st.converted
	sort.SliceStable(st.warnings, func(i, j int) bool { return st.warnings[i].line < st.warnings[j].line })
	for _, w := range st.warnings {
		res.Warnings = append(res.Warnings, w.msg)
	}
	if res.Converted == 0 {
		return res, nil
	}

	normalized, change, err := m.normalizer.Normalize(out, m.classifier.Icons())
	if err != nil {
		return res, errors.Errorf("normalizing imports: %w", err)
	}
	res.Imports = change
	res.Text = normalized
	res.Changed = normalized != text
	return res, nil
}

// migration is the running state of one Migrate call
type migration struct {
	layout    Layout
	found     int
	converted int
	warnings  []lineWarning
}

type lineWarning struct {
	line int
	msg  string
}

// migrateRegion rewrites the blocks of text back to front so earlier spans stay
// valid. Inner content is migrated before its block is rebuilt. lineBase is the
// number of lines preceding text in the file.
func (m *Migrator) migrateRegion(ctx context.Context, st *migration, text string, lineBase int) (string, []*Block) {
	logger := zerolog.Ctx(ctx)

	blocks := m.scanner.Scan(text)
	out := text
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		b.Line += lineBase
		st.found++

		m.extractor.Extract(text, b)
		if b.Unparsed {
			logger.Debug().Int("line", b.Line).Str("reason", b.Reason).Msg("skipping unparsed block")
			st.warnings = append(st.warnings, lineWarning{line: b.Line, msg: b.Warning()})
			continue
		}

		cls := m.classifier.Classify(b.Title)
		b.Classification = &cls

		inner, _ := m.migrateRegion(ctx, st, b.InnerContent, lineBase+lineOf(text, b.InnerSpan.Start)-1)
		out = out[:b.Start] + m.rebuilder.Rebuild(b, inner, st.layout) + out[b.End:]
		st.converted++

		logger.Debug().
			Int("line", b.Line).
			Str("title", b.Title).
			Str("guard_key", b.GuardKey).
			Str("icon", cls.Icon).
			Str("theme", cls.Theme).
			Msg("converted block")
	}
	return out, blocks
}
