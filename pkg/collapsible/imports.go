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
	"path"
	"regexp"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	importDecl = regexp.MustCompile(`(?m)^[ \t]*import\s+(?:type\s+)?` +
		`(?:([A-Za-z_$][\w$]*)\s*,?\s*)?` + // default binding
		`(?:\*\s*as\s+([A-Za-z_$][\w$]*)\s*)?` + // namespace binding
		`(?:\{([^}]*)\}\s*)?` + // named bindings
		`from\s*(['"])([^'"]+)['"][ \t]*;?`)
	sideEffectImport = regexp.MustCompile(`(?m)^[ \t]*import\s*(['"])([^'"]+)['"][ \t]*;?`)
)

// 🔗 Binding is one named import, Alias is empty unless renamed with "as"
type Binding struct {
	Name  string
	Alias string
}

// Local returns the identifier the binding introduces into the file
func (b Binding) Local() string {
	if b.Alias != "" {
		return b.Alias
	}
	return b.Name
}

// 📥 ImportDecl is one import declaration of a source file
type ImportDecl struct {
	Span
	Specifier string
	Quote     byte
	Default   string
	Namespace string
	Named     []Binding
	Braces    *Span // text between { and }, nil without named bindings
	Semicolon bool
}

// locals returns every identifier the declaration introduces
func (d ImportDecl) locals() []string {
	var out []string
	if d.Default != "" {
		out = append(out, d.Default)
	}
	if d.Namespace != "" {
		out = append(out, d.Namespace)
	}
	for _, b := range d.Named {
		out = append(out, b.Local())
	}
	return out
}

// 📚 ImportSet is the ordered list of a file's import declarations
type ImportSet struct {
	Decls []ImportDecl
}

// ParseImports collects every module-level import declaration of text. Lines
// that only look like imports, such as code samples in template literals, are
// ignored.
func ParseImports(text string) ImportSet {
	return parseImports(text, scanModuleScope(text))
}

func parseImports(text string, scope moduleScope) ImportSet {
	var set ImportSet
	for _, m := range importDecl.FindAllStringSubmatchIndex(text, -1) {
		if !scope.contains(m[0]) {
			continue
		}
		d := ImportDecl{
			Span:      Span{Start: m[0], End: m[1]},
			Specifier: text[m[10]:m[11]],
			Quote:     text[m[8]],
			Semicolon: strings.HasSuffix(text[m[0]:m[1]], ";"),
		}
		if m[2] >= 0 {
			d.Default = text[m[2]:m[3]]
		}
		if m[4] >= 0 {
			d.Namespace = text[m[4]:m[5]]
		}
		if m[6] >= 0 {
			d.Braces = &Span{Start: m[6], End: m[7]}
			d.Named = parseNamed(text[m[6]:m[7]])
		}
		set.Decls = append(set.Decls, d)
	}
	for _, m := range sideEffectImport.FindAllStringSubmatchIndex(text, -1) {
		if !scope.contains(m[0]) {
			continue
		}
		set.Decls = append(set.Decls, ImportDecl{
			Span:      Span{Start: m[0], End: m[1]},
			Specifier: text[m[4]:m[5]],
			Quote:     text[m[2]],
			Semicolon: strings.HasSuffix(text[m[0]:m[1]], ";"),
		})
	}
	sort.SliceStable(set.Decls, func(i, j int) bool {
		return set.Decls[i].Start < set.Decls[j].Start
	})
	return set
}

func parseNamed(body string) []Binding {
	var out []Binding
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "type "))
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		b := Binding{Name: fields[0]}
		if len(fields) == 3 && fields[1] == "as" {
			b.Alias = fields[2]
		}
		out = append(out, b)
	}
	return out
}

// Declares reports whether any declaration introduces the local identifier
func (s ImportSet) Declares(local string) bool {
	for _, d := range s.Decls {
		for _, l := range d.locals() {
			if l == local {
				return true
			}
		}
	}
	return false
}

// Find returns the first declaration of specifier with named bindings
func (s ImportSet) Find(specifier string) (ImportDecl, bool) {
	for _, d := range s.Decls {
		if d.Specifier == specifier && d.Braces != nil {
			return d, true
		}
	}
	return ImportDecl{}, false
}

// 📋 ImportChange records what the normalizer added
type ImportChange struct {
	ComponentSpecifier string   // set when the component import was inserted
	AddedIcons         []string // icon bindings appended, in canonical order
}

// Changed reports whether any declaration was added or extended
func (c ImportChange) Changed() bool {
	return c.ComponentSpecifier != "" || len(c.AddedIcons) > 0
}

// 🧹 Normalizer declares the unified component and icon bindings exactly once
type Normalizer struct {
	pattern Pattern
}

// 🏭 NewNormalizer creates a normalizer for the given pattern
func NewNormalizer(p Pattern) *Normalizer {
	return &Normalizer{pattern: p}
}

type textEdit struct {
	Span
	text string
}

// Normalize returns text with the component binding and the bindings of icons
// declared. Names already imported or declared at module level are never added
// again, so normalizing twice is a no-op. It fails with ErrMissingIconImport when
// icons are missing and no aggregate icon declaration exists to extend.
func (n *Normalizer) Normalize(text string, icons []string) (string, ImportChange, error) {
	var change ImportChange
	scope := scanModuleScope(text)
	set := parseImports(text, scope)
	locals := scope.locals(text)
	declared := func(name string) bool {
		return locals[name] || set.Declares(name)
	}
	nl := DetectNewline(text)
	var edits []textEdit

	var missing []string
	for _, icon := range icons {
		binding := IconBinding(n.pattern.IconPrefix, icon)
		if !declared(binding) && !contains(missing, binding) {
			missing = append(missing, binding)
		}
	}
	if len(missing) > 0 {
		decl, ok := set.Find(n.pattern.IconModule)
		if !ok {
			return text, change, errors.Errorf("%w: no import from %q", ErrMissingIconImport, n.pattern.IconModule)
		}
		sort.Strings(missing)
		edits = append(edits, textEdit{Span: *decl.Braces, text: appendBindings(text[decl.Braces.Start:decl.Braces.End], missing, nl)})
		change.AddedIcons = missing
	}

	if !declared(n.pattern.Component) {
		anchor, specifier, ok := n.componentAnchor(set)
		if !ok {
			return text, change, errors.Errorf("inserting %s import: %w", n.pattern.Component, ErrNoImports)
		}
		lineEnd := len(text)
		if i := strings.IndexByte(text[anchor.End:], '\n'); i >= 0 {
			lineEnd = anchor.End + i
			if lineEnd > anchor.End && text[lineEnd-1] == '\r' {
				lineEnd--
			}
		}
		semi := ""
		if anchor.Semicolon {
			semi = ";"
		}
		decl := nl + indentAt(text, anchor.Start) + "import { " + n.pattern.Component + " } from " +
			string(anchor.Quote) + specifier + string(anchor.Quote) + semi
		edits = append(edits, textEdit{Span: Span{Start: lineEnd, End: lineEnd}, text: decl})
		change.ComponentSpecifier = specifier
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].Start > edits[j].Start })
	for _, e := range edits {
		text = text[:e.Start] + e.text + text[e.End:]
	}
	return text, change, nil
}

// componentAnchor picks the declaration to insert the component import after: the
// last sibling services import, else the last import
func (n *Normalizer) componentAnchor(set ImportSet) (ImportDecl, string, bool) {
	for i := len(set.Decls) - 1; i >= 0; i-- {
		d := set.Decls[i]
		if strings.Contains(d.Specifier, "/services/") {
			if n.pattern.ComponentFile == "" {
				return d, n.pattern.ComponentModule, true
			}
			return d, path.Dir(d.Specifier) + "/" + n.pattern.ComponentFile, true
		}
	}
	if len(set.Decls) == 0 {
		return ImportDecl{}, "", false
	}
	return set.Decls[len(set.Decls)-1], n.pattern.ComponentModule, true
}

// appendBindings appends names to the text between an import's braces, keeping
// its single-line or one-per-line layout and any trailing comma
func appendBindings(body string, names []string, nl string) string {
	trimmed := strings.TrimRight(body, " \t\r\n,")
	trailing := body[len(trimmed):]

	if !strings.Contains(strings.TrimSpace(body), "\n") && !strings.Contains(trailing, "\n") {
		if strings.TrimSpace(trimmed) == "" {
			return " " + strings.Join(names, ", ") + " "
		}
		return trimmed + ", " + strings.Join(names, ", ") + trailing
	}

	indent := "\t"
	lastLine := trimmed[strings.LastIndexByte(trimmed, '\n')+1:]
	if ws := lastLine[:len(lastLine)-len(strings.TrimLeft(lastLine, " \t"))]; ws != "" {
		indent = ws
	}
	var sb strings.Builder
	sb.WriteString(trimmed)
	for _, name := range names {
		sb.WriteString(",")
		sb.WriteString(nl)
		sb.WriteString(indent)
		sb.WriteString(name)
	}
	sb.WriteString(trailing)
	return sb.String()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
