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
)

// 🏷️ TagKind is the shape of a markup tag
type TagKind int

const (
	TagOpen        TagKind = iota // <Name ...>
	TagClose                      // </Name>
	TagSelfClosing                // <Name ... />
)

// String returns a string representation of TagKind
func (k TagKind) String() string {
	switch k {
	case TagOpen:
		return "open"
	case TagClose:
		return "close"
	case TagSelfClosing:
		return "self-closing"
	default:
		return "unknown"
	}
}

// 🏷️ Tag is one lexed markup tag, Start/End are byte offsets (half-open)
type Tag struct {
	Name  string
	Kind  TagKind
	Start int
	End   int
	Attrs string // raw attribute text, trimmed
}

// Tokenize returns every tag in text in order of appearance. Text between tags,
// including code outside markup, is skipped.
func Tokenize(text string) []Tag {
	var tags []Tag
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '<')
		if j < 0 {
			break
		}
		i += j
		tag, ok := ReadTag(text, i)
		if !ok {
			i++
			continue
		}
		tags = append(tags, tag)
		i = tag.End
	}
	return tags
}

// ReadTag lexes the tag starting at text[start], which must be '<'. Attribute text
// is scanned with brace depth and quote tracking, so arrow functions and nested
// elements inside {...} do not end the tag.
func ReadTag(text string, start int) (Tag, bool) {
	if start >= len(text) || text[start] != '<' {
		return Tag{}, false
	}
	i := start + 1
	kind := TagOpen
	if i < len(text) && text[i] == '/' {
		kind = TagClose
		i++
	}

	nameStart := i
	if i < len(text) && isNameStart(text[i]) {
		i++
		for i < len(text) && isNameChar(text[i]) {
			i++
		}
	}
	name := text[nameStart:i]
	if name == "" && (i >= len(text) || text[i] != '>') {
		return Tag{}, false
	}
	// a name must be followed by whitespace, '/', or '>'
	if i < len(text) && !isSpace(text[i]) && text[i] != '/' && text[i] != '>' {
		return Tag{}, false
	}

	attrStart := i
	depth := 0
	var quote byte
	for ; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch {
			case c == '\\' && depth > 0:
				i++
			case c == quote:
				quote = 0
			case c == '\n' && quote != '`':
				return Tag{}, false
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '`':
			if depth > 0 {
				quote = c
			}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return Tag{}, false
			}
			depth--
		case '<':
			if depth == 0 {
				return Tag{}, false
			}
		case '>':
			if depth > 0 {
				continue
			}
			attrs := strings.TrimSpace(text[attrStart:i])
			if kind != TagClose && strings.HasSuffix(attrs, "/") {
				kind = TagSelfClosing
				attrs = strings.TrimSpace(strings.TrimSuffix(attrs, "/"))
			}
			if kind == TagClose && attrs != "" {
				return Tag{}, false
			}
			return Tag{Name: name, Kind: kind, Start: start, End: i + 1, Attrs: attrs}, true
		}
	}
	return Tag{}, false
}

// matchClose returns the index of the close tag balancing tags[open], tracking
// depth for that tag name only. Returns -1 when the text ends first.
func matchClose(tags []Tag, open int) int {
	name := tags[open].Name
	depth := 0
	for i := open; i < len(tags); i++ {
		t := tags[i]
		if t.Name != name {
			continue
		}
		switch t.Kind {
		case TagOpen:
			depth++
		case TagClose:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isNameStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '.' || c == ':' || c == '-'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// skipSpace returns the first offset at or after i that is not whitespace
func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}
