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

var localDecl = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:default\s+)?(?:declare\s+)?` +
	`(?:const|let|var|function\*?|class|enum|type|interface)\s+([A-Za-z_$][\w$]*)`)

// moduleScope is the set of byte ranges holding module-level code. Strings,
// comments, template literals and bracketed regions are excluded, and the scope
// ends at the first element of markup since markup text is not code.
type moduleScope []Span

func scanModuleScope(text string) moduleScope {
	var scope moduleScope
	depth, start, open := 0, 0, true

	closeAt := func(at int) {
		if open && at > start {
			scope = append(scope, Span{Start: start, End: at})
		}
		open = false
	}
	openAt := func(at int) {
		if !open && depth == 0 {
			start, open = at, true
		}
	}

	for i := 0; i < len(text); {
		switch c := text[i]; {
		case strings.HasPrefix(text[i:], "//"):
			if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
				i += nl
			} else {
				i = len(text)
			}
		case strings.HasPrefix(text[i:], "/*"):
			closeAt(i)
			if end := strings.Index(text[i+2:], "*/"); end >= 0 {
				i += end + 4
			} else {
				i = len(text)
			}
			openAt(i)
		case c == '\'' || c == '"':
			closeAt(i)
			i = skipQuoted(text, i)
			openAt(i)
		case c == '`':
			closeAt(i)
			i = skipTemplate(text, i)
			openAt(i)
		case c == '{' || c == '(' || c == '[':
			closeAt(i)
			depth++
			i++
		case c == '}' || c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
			i++
			openAt(i)
		case c == '<' && opensMarkup(text, i):
			closeAt(i)
			return scope
		default:
			i++
		}
	}
	closeAt(len(text))
	return scope
}

// contains reports whether offset lies in module-level code
func (s moduleScope) contains(offset int) bool {
	for _, sp := range s {
		if offset >= sp.Start && offset < sp.End {
			return true
		}
	}
	return false
}

// locals returns the identifiers declared by module-level statements
func (s moduleScope) locals(text string) map[string]bool {
	out := map[string]bool{}
	for _, m := range localDecl.FindAllStringSubmatchIndex(text, -1) {
		if s.contains(m[0]) {
			out[text[m[2]:m[3]]] = true
		}
	}
	return out
}

// skipQuoted returns the offset after the string literal opening at i. An
// unterminated literal ends at the line break.
func skipQuoted(text string, i int) int {
	quote := text[i]
	for i++; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(text)
}

// skipTemplate returns the offset after the template literal opening at i,
// including any nested ${...} substitutions
func skipTemplate(text string, i int) int {
	for i++; i < len(text); i++ {
		switch {
		case text[i] == '\\':
			i++
		case text[i] == '`':
			return i + 1
		case strings.HasPrefix(text[i:], "${"):
			i = skipSubstitution(text, i+2) - 1
		}
	}
	return len(text)
}

// skipSubstitution returns the offset after the } closing a substitution whose
// body starts at i
func skipSubstitution(text string, i int) int {
	depth := 1
	for i < len(text) {
		switch c := text[i]; {
		case c == '\'' || c == '"':
			i = skipQuoted(text, i)
		case c == '`':
			i = skipTemplate(text, i)
		case c == '{':
			depth++
			i++
		case c == '}':
			depth--
			i++
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(text)
}

// opensMarkup reports whether the < at i starts an element rather than a
// comparison or a type argument list
func opensMarkup(text string, i int) bool {
	if i+1 >= len(text) {
		return false
	}
	if next := text[i+1]; next != '>' && !isLetter(next) {
		return false
	}
	before := strings.TrimRight(text[:i], " \t\r\n")
	if before == "" {
		return true
	}
	if strings.HasSuffix(before, "return") {
		return true
	}
	return strings.IndexByte("(=?:&|,[{}>;", before[len(before)-1]) >= 0
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
