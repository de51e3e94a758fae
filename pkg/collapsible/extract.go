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
	"regexp"
	"strings"
)

var titleAttr = regexp.MustCompile(`(?:^|\s)title\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// jsx whitespace spacers that sit between an icon and the title text
var spacers = []string{`{' '}`, `{" "}`, "{` `}"}

// 🧲 Extractor pulls the human-readable title out of a block's header control
type Extractor struct {
	pattern Pattern
}

// 🏭 NewExtractor creates an extractor for the given pattern
func NewExtractor(p Pattern) *Extractor {
	return &Extractor{pattern: p}
}

// Extract sets b.Title from the header region of text, or marks b unparsed when no
// plain-text title can be isolated. Blocks that are already unparsed are left alone.
func (e *Extractor) Extract(text string, b *Block) {
	if b.Unparsed {
		return
	}
	header := text[b.HeaderSpan.Start:b.HeaderSpan.End]
	tags := Tokenize(header)

	raw, found := "", false
	for i, t := range tags {
		if t.Name != e.pattern.Title || t.Kind != TagOpen {
			continue
		}
		c := matchClose(tags, i)
		if c < 0 {
			b.fail("<%s> is never closed", e.pattern.Title)
			return
		}
		raw, found = header[t.End:tags[c].Start], true
		break
	}
	if !found && len(tags) > 0 {
		if m := titleAttr.FindStringSubmatch(tags[0].Attrs); m != nil {
			raw, found = m[1]+m[2], true
		}
	}
	if !found {
		b.fail("no <%s> inside <%s>", e.pattern.Title, e.pattern.Header)
		return
	}

	title := CleanTitle(raw)
	switch {
	case title == "":
		b.fail("empty title")
	case strings.ContainsAny(title, "<>{}"):
		b.fail("title %q is not plain text", title)
	default:
		b.Title = title
	}
}

// CleanTitle strips decorative self-closing tags and spacers from both ends of a
// title and collapses runs of whitespace.
func CleanTitle(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		rest, ok := cutLeadingDecoration(s)
		if !ok {
			break
		}
		s = strings.TrimSpace(rest)
	}
	for {
		rest, ok := cutTrailingDecoration(s)
		if !ok {
			break
		}
		s = strings.TrimSpace(rest)
	}
	return strings.Join(strings.Fields(s), " ")
}

func cutLeadingDecoration(s string) (string, bool) {
	for _, sp := range spacers {
		if strings.HasPrefix(s, sp) {
			return s[len(sp):], true
		}
	}
	if strings.HasPrefix(s, "<") {
		if t, ok := ReadTag(s, 0); ok && t.Kind == TagSelfClosing {
			return s[t.End:], true
		}
	}
	return s, false
}

func cutTrailingDecoration(s string) (string, bool) {
	for _, sp := range spacers {
		if strings.HasSuffix(s, sp) {
			return s[:len(s)-len(sp)], true
		}
	}
	if strings.HasSuffix(s, "/>") {
		idx := strings.LastIndexByte(s, '<')
		if idx < 0 {
			return s, false
		}
		if t, ok := ReadTag(s, idx); ok && t.Kind == TagSelfClosing && t.End == len(s) {
			return s[:idx], true
		}
	}
	return s, false
}
