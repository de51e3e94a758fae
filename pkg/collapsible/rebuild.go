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
	"strings"
)

// 🔨 Rebuilder synthesizes the unified component for a classified block
type Rebuilder struct {
	pattern Pattern
}

// 🏭 NewRebuilder creates a rebuilder for the given pattern
func NewRebuilder(p Pattern) *Rebuilder {
	return &Rebuilder{pattern: p}
}

// 📐 Layout is the whitespace convention of one file
type Layout struct {
	Unit    string // one level of indentation
	Newline string // "\n" or "\r\n"
}

// DetectLayout returns the indentation unit and line ending used by text
func DetectLayout(text string) Layout {
	return Layout{Unit: DetectIndentUnit(text), Newline: DetectNewline(text)}
}

// Rebuild returns the replacement for b's span. inner is emitted verbatim except
// for the indentation that preceded the old content close tag.
func (r *Rebuilder) Rebuild(b *Block, inner string, layout Layout) string {
	cls := DefaultFallback
	if b.Classification != nil {
		cls = *b.Classification
	}
	attr := b.Indent + layout.Unit
	nl := layout.Newline
	if nl == "" {
		nl = "\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<%s%s", r.pattern.Component, nl)
	fmt.Fprintf(&sb, "%stitle=\"%s\"%s", attr, EscapeAttr(b.Title), nl)
	fmt.Fprintf(&sb, "%sicon={<%s />}%s", attr, IconBinding(r.pattern.IconPrefix, cls.Icon), nl)
	if cls.Theme != ThemeDefault {
		fmt.Fprintf(&sb, "%stheme=\"%s\"%s", attr, EscapeAttr(cls.Theme), nl)
	}
	fmt.Fprintf(&sb, "%sdefaultCollapsed={false}%s", attr, nl)
	sb.WriteString(b.Indent)
	sb.WriteString(">")

	if strings.Contains(inner, "\n") {
		body := trimTrailingIndent(inner)
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString(nl)
		}
		sb.WriteString(b.Indent)
	} else {
		sb.WriteString(inner)
	}
	fmt.Fprintf(&sb, "</%s>", r.pattern.Component)
	return sb.String()
}

// EscapeAttr escapes s for a double-quoted markup attribute. Entities already in
// the text are kept, so only the quote itself is replaced.
func EscapeAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}

// trimTrailingIndent drops the whitespace after the last newline when the last
// line holds nothing else
func trimTrailingIndent(s string) string {
	nl := strings.LastIndexByte(s, '\n')
	if nl >= 0 && strings.TrimLeft(s[nl+1:], " \t") == "" {
		return s[:nl+1]
	}
	return s
}

// DetectNewline returns "\r\n" when most line breaks of text are CRLF, else "\n"
func DetectNewline(text string) string {
	crlf := strings.Count(text, "\r\n")
	if crlf > 0 && crlf >= strings.Count(text, "\n")-crlf {
		return "\r\n"
	}
	return "\n"
}

// DetectIndentUnit returns the file's indentation unit: a tab when tab-indented
// lines dominate, else the smallest space indentation seen
func DetectIndentUnit(text string) string {
	tabs, spaces, minSpaces := 0, 0, 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "\t"):
			tabs++
		case strings.HasPrefix(line, " "):
			n := len(line) - len(strings.TrimLeft(line, " "))
			if strings.HasPrefix(strings.TrimLeft(line, " "), "*") {
				// block comment continuation lines sit one column off
				continue
			}
			spaces++
			if minSpaces == 0 || n < minSpaces {
				minSpaces = n
			}
		}
	}
	if spaces > tabs && minSpaces > 0 {
		return strings.Repeat(" ", minSpaces)
	}
	return "\t"
}
