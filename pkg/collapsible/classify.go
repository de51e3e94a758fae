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
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// Icon identifiers emitted by the default rule table
const (
	IconBook        = "book"
	IconPackage     = "package"
	IconSend        = "send"
	IconSettings    = "settings"
	IconCheckCircle = "check-circle"
)

// Theme identifiers emitted by the default rule table, "" means the component default
const (
	ThemeDefault       = ""
	ThemeInformational = "informational"
	ThemeConfiguration = "configuration"
	ThemeAction        = "action"
	ThemeSuccess       = "success"
)

// 📐 Rule maps any of its keywords to an icon and theme
type Rule struct {
	Keywords []string `json:"keywords" yaml:"keywords" hcl:"keywords"`
	Icon     string   `json:"icon" yaml:"icon" hcl:"icon"`
	Theme    string   `json:"theme,omitempty" yaml:"theme,omitempty" hcl:"theme,optional"`
}

// 🏷️ Classification is the icon and theme chosen for a title
type Classification struct {
	Icon  string
	Theme string
	Rule  int // 1-based priority of the matching rule, 0 for the fallback
}

// DefaultFallback applies when no rule matches
var DefaultFallback = Classification{Icon: IconSettings, Theme: ThemeDefault}

// DefaultRules returns the rule table in priority order. The order decides titles
// that hit several rules: the earliest rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"overview", "what is", "how", "education", "learn", "understand"}, Icon: IconBook, Theme: ThemeInformational},
		{Keywords: []string{"configuration", "credentials", "settings", "parameters", "advanced", "pkce"}, Icon: IconSettings, Theme: ThemeConfiguration},
		{Keywords: []string{"request", "authorization", "generate", "create"}, Icon: IconSend, Theme: ThemeAction},
		{Keywords: []string{"response", "received", "token", "code", "result"}, Icon: IconPackage, Theme: ThemeDefault},
		{Keywords: []string{"complete", "success", "done", "next steps"}, Icon: IconCheckCircle, Theme: ThemeSuccess},
		{Keywords: []string{"deep dive", "details"}, Icon: IconBook, Theme: ThemeSuccess},
	}
}

type compiledRule struct {
	Rule
	phrases [][]string
}

// 🧠 Classifier evaluates an ordered rule table, first match wins. It is never
// mutated after construction and is safe for concurrent use.
type Classifier struct {
	rules    []compiledRule
	fallback Classification
}

// 🏭 NewClassifier compiles rules in the given order
func NewClassifier(rules []Rule, fallback Classification) (*Classifier, error) {
	if fallback.Icon == "" {
		return nil, errors.Errorf("fallback icon is required")
	}
	c := &Classifier{fallback: Classification{Icon: fallback.Icon, Theme: fallback.Theme}}
	for i, r := range rules {
		if r.Icon == "" {
			return nil, errors.Errorf("rule %d: icon is required", i+1)
		}
		if len(r.Keywords) == 0 {
			return nil, errors.Errorf("rule %d: keywords are required", i+1)
		}
		cr := compiledRule{Rule: r}
		for _, kw := range r.Keywords {
			phrase := words(kw)
			if len(phrase) == 0 {
				return nil, errors.Errorf("rule %d: keyword %q has no words", i+1, kw)
			}
			cr.phrases = append(cr.phrases, phrase)
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// Classify returns the classification of the first rule with a keyword among the
// title's words, or the fallback
func (c *Classifier) Classify(title string) Classification {
	tw := words(title)
	for i, r := range c.rules {
		for _, phrase := range r.phrases {
			if containsPhrase(tw, phrase) {
				return Classification{Icon: r.Icon, Theme: r.Theme, Rule: i + 1}
			}
		}
	}
	return c.fallback
}

// Icons returns every icon the classifier can emit, in rule order, fallback last
func (c *Classifier) Icons() []string {
	seen := map[string]bool{}
	var icons []string
	add := func(icon string) {
		if !seen[icon] {
			seen[icon] = true
			icons = append(icons, icon)
		}
	}
	for _, r := range c.rules {
		add(r.Icon)
	}
	add(c.fallback.Icon)
	return icons
}

// IconBinding converts an icon identifier into its component binding,
// e.g. "check-circle" with prefix "Fi" becomes "FiCheckCircle"
func IconBinding(prefix, icon string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range strings.FieldsFunc(icon, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	}) {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}

// words lower-cases s and splits it into letter/digit runs
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsPhrase reports whether phrase occurs as consecutive words of ws
func containsPhrase(ws, phrase []string) bool {
outer:
	for i := 0; i+len(phrase) <= len(ws); i++ {
		for j, p := range phrase {
			if ws[i+j] != p {
				continue outer
			}
		}
		return true
	}
	return false
}
