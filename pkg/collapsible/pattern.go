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
	"gitlab.com/tozd/go/errors"
)

// 🧩 Pattern names the tags and identifiers of the deprecated three-part pattern
// and of the unified component that replaces it
type Pattern struct {
	Wrapper  string // outer wrapper tag
	Header   string // toggle-style header control
	Title    string // title tag inside the header control
	Content  string // conditionally rendered content container
	StateMap string // boolean-keyed state map used by the gate

	Component       string // unified component tag and binding
	ComponentModule string // fallback module specifier for the component import
	ComponentFile   string // module file name used next to a sibling services import

	IconModule string // aggregate icon import specifier
	IconPrefix string // binding prefix for icon identifiers
}

// 🏭 DefaultPattern returns the collapsible section pattern used by the flow pages
func DefaultPattern() Pattern {
	return Pattern{
		Wrapper:         "CollapsibleSection",
		Header:          "CollapsibleHeaderButton",
		Title:           "CollapsibleTitle",
		Content:         "CollapsibleContent",
		StateMap:        "collapsedSections",
		Component:       "CollapsibleHeader",
		ComponentModule: "../../services/collapsibleHeaderService",
		ComponentFile:   "collapsibleHeaderService",
		IconModule:      "react-icons/fi",
		IconPrefix:      "Fi",
	}
}

// 🔍 Validate checks that every tag name is set
func (p Pattern) Validate() error {
	for name, v := range map[string]string{
		"wrapper":     p.Wrapper,
		"header":      p.Header,
		"title":       p.Title,
		"content":     p.Content,
		"state map":   p.StateMap,
		"component":   p.Component,
		"icon module": p.IconModule,
	} {
		if v == "" {
			return errors.Errorf("pattern %s is required", name)
		}
	}
	return nil
}
