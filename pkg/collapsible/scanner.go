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
	"fmt"
	"regexp"
	"strings"
)

// 📏 Span is a half-open byte range [Start, End)
type Span struct {
	Start int
	End   int
}

// 📦 Block is one located occurrence of the deprecated pattern
type Block struct {
	Span
	Line   int    // 1-based line of the wrapper open tag
	Indent string // indentation of the wrapper's line

	HeaderSpan   Span   // header control, open tag through close tag
	InnerSpan    Span   // between the content container's tags
	InnerContent string // verbatim text of InnerSpan
	GuardKey     string // state map key referenced by the gate, may be empty
	Title        string // set by Extract

	Unparsed bool
	Reason   string

	Classification *Classification // set once classified
}

// Warning returns the diagnostic attached to the file report for an unparsed block
func (b *Block) Warning() string {
	if b.GuardKey != "" {
		return fmt.Sprintf("line %d (%s): %s", b.Line, b.GuardKey, b.Reason)
	}
	return fmt.Sprintf("line %d: %s", b.Line, b.Reason)
}

func (b *Block) fail(format string, args ...any) *Block {
	b.Unparsed = true
	b.Reason = fmt.Sprintf(format, args...)
	return b
}

// 🔎 Scanner locates candidate blocks by depth-tracked tag matching
type Scanner struct {
	pattern  Pattern
	stateRef *regexp.Regexp
	keyRef   *regexp.Regexp
}

// 🏭 NewScanner creates a scanner for the given pattern
func NewScanner(p Pattern) *Scanner {
	sm := regexp.QuoteMeta(p.StateMap)
	return &Scanner{
		pattern:  p,
		stateRef: regexp.MustCompile(`(^|[^\w$])` + sm + `\b`),
		keyRef: regexp.MustCompile(sm + `\s*(?:\?\.|\.)\s*([A-Za-z_$][\w$]*)` +
			`|` + sm + `\s*(?:\?\.)?\s*\[\s*['"]([^'"\]]+)['"]\s*\]`),
	}
}

// Scan returns every candidate block in text ordered by start offset. Spans never
// overlap: scanning resumes after each block, so candidates nested inside a block
// belong to that block's inner content.
func (s *Scanner) Scan(text string) []*Block {
	tags := Tokenize(text)
	byStart := make(map[int]int, len(tags))
	for i, t := range tags {
		byStart[t.Start] = i
	}

	var candidates []int
	for i := range tags {
		if s.isCandidate(text, tags, i) {
			candidates = append(candidates, i)
		}
	}

	var blocks []*Block
	pos := 0
	for ci, ti := range candidates {
		if tags[ti].Start < pos {
			continue
		}
		b := s.parse(text, tags, byStart, ti)
		if b.End < 0 {
			// no terminator: the block runs to the next candidate or the end of text
			b.End = len(text)
			for _, next := range candidates[ci+1:] {
				if tags[next].Start > b.Start {
					b.End = tags[next].Start
					break
				}
			}
		}
		blocks = append(blocks, b)
		pos = b.End
	}
	return blocks
}

// isCandidate reports whether tags[i] opens the wrapper and its first child is the
// header control
func (s *Scanner) isCandidate(text string, tags []Tag, i int) bool {
	t := tags[i]
	if t.Name != s.pattern.Wrapper || t.Kind != TagOpen || i+1 >= len(tags) {
		return false
	}
	h := tags[i+1]
	return h.Name == s.pattern.Header &&
		h.Kind != TagClose &&
		h.Start == skipSpace(text, t.End)
}

func (s *Scanner) parse(text string, tags []Tag, byStart map[int]int, ti int) *Block {
	p := s.pattern
	open := tags[ti]
	b := &Block{
		Span:   Span{Start: open.Start, End: -1},
		Line:   lineOf(text, open.Start),
		Indent: indentAt(text, open.Start),
	}

	closeIdx := matchClose(tags, ti)
	if closeIdx < 0 {
		return b.fail("no closing </%s> before the next section or end of file", p.Wrapper)
	}
	wclose := tags[closeIdx]
	b.End = wclose.End

	if open.Attrs != "" {
		return b.fail("<%s> carries attributes that would be dropped", p.Wrapper)
	}

	hi := ti + 1
	header := tags[hi]
	headerEnd := header.End
	if header.Kind == TagOpen {
		hc := matchClose(tags, hi)
		if hc < 0 || hc > closeIdx {
			return b.fail("<%s> is never closed", p.Header)
		}
		headerEnd = tags[hc].End
	}
	b.HeaderSpan = Span{Start: header.Start, End: headerEnd}

	// gate: { <expr referencing the state map> && ( <Content> ... </Content> ) }
	pos := skipSpace(text, headerEnd)
	if pos >= wclose.Start || text[pos] != '{' {
		return b.fail("missing conditional gate after <%s>", p.Header)
	}
	amp := strings.Index(text[pos+1:wclose.Start], "&&")
	if amp < 0 {
		return b.fail("conditional gate has no && expression")
	}
	gate := text[pos+1 : pos+1+amp]
	if strings.ContainsAny(gate, "{}<") {
		return b.fail("conditional gate is not a simple expression")
	}
	if !s.stateRef.MatchString(gate) {
		return b.fail("conditional gate does not reference %s", p.StateMap)
	}
	b.GuardKey = s.guardKey(gate)

	pos = skipSpace(text, pos+1+amp+2)
	paren := pos < len(text) && text[pos] == '('
	if paren {
		pos = skipSpace(text, pos+1)
	}
	ci, ok := byStart[pos]
	if !ok || tags[ci].Name != p.Content || tags[ci].Kind != TagOpen {
		return b.fail("missing <%s> inside the conditional gate", p.Content)
	}
	if tags[ci].Attrs != "" {
		return b.fail("<%s> carries attributes that would be dropped", p.Content)
	}
	cc := matchClose(tags, ci)
	if cc < 0 || cc > closeIdx {
		return b.fail("<%s> is never closed", p.Content)
	}
	b.InnerSpan = Span{Start: tags[ci].End, End: tags[cc].Start}
	b.InnerContent = text[b.InnerSpan.Start:b.InnerSpan.End]

	pos = skipSpace(text, tags[cc].End)
	if paren {
		if pos >= len(text) || text[pos] != ')' {
			return b.fail("missing ) after </%s>", p.Content)
		}
		pos = skipSpace(text, pos+1)
	}
	if pos >= len(text) || text[pos] != '}' {
		return b.fail("missing } closing the conditional gate")
	}
	pos = skipSpace(text, pos+1)
	if pos != wclose.Start {
		return b.fail("unexpected content before </%s>", p.Wrapper)
	}
	return b
}

// guardKey returns the literal key the gate looks up, or "" for computed keys
func (s *Scanner) guardKey(gate string) string {
	m := s.keyRef.FindStringSubmatch(gate)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// lineOf returns the 1-based line number of offset
func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

// indentAt returns the leading whitespace of the line containing offset
func indentAt(text string, offset int) string {
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	line := text[lineStart:offset]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
