package collapsible

import (
	"strings"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

// pkceFile holds one well-formed section titled "What is PKCE?"
var pkceFile = lines(
	"import React, { useState } from 'react';",
	"import { FiCheckCircle, FiChevronDown, FiInfo } from 'react-icons/fi';",
	"import { themeService } from '../../services/themeService';",
	"import styled from 'styled-components';",
	"",
	"export const Flow = () => {",
	"\tconst [collapsedSections, setCollapsedSections] = useState<Record<string, boolean>>({});",
	"\treturn (",
	"\t\t<div>",
	"\t\t\t<CollapsibleSection>",
	"\t\t\t\t<CollapsibleHeaderButton onClick={() => toggleSection('overview')}>",
	"\t\t\t\t\t<CollapsibleTitle>",
	"\t\t\t\t\t\t<FiInfo /> What is PKCE?",
	"\t\t\t\t\t</CollapsibleTitle>",
	"\t\t\t\t</CollapsibleHeaderButton>",
	"\t\t\t\t{!collapsedSections.overview && (",
	"\t\t\t\t\t<CollapsibleContent><p>x</p></CollapsibleContent>",
	"\t\t\t\t)}",
	"\t\t\t</CollapsibleSection>",
	"\t\t</div>",
	"\t);",
	"};",
	"",
)

var pkceWant = lines(
	"import React, { useState } from 'react';",
	"import { FiCheckCircle, FiChevronDown, FiInfo, FiBook, FiPackage, FiSend, FiSettings } from 'react-icons/fi';",
	"import { themeService } from '../../services/themeService';",
	"import { CollapsibleHeader } from '../../services/collapsibleHeaderService';",
	"import styled from 'styled-components';",
	"",
	"export const Flow = () => {",
	"\tconst [collapsedSections, setCollapsedSections] = useState<Record<string, boolean>>({});",
	"\treturn (",
	"\t\t<div>",
	"\t\t\t<CollapsibleHeader",
	"\t\t\t\ttitle=\"What is PKCE?\"",
	"\t\t\t\ticon={<FiBook />}",
	"\t\t\t\ttheme=\"informational\"",
	"\t\t\t\tdefaultCollapsed={false}",
	"\t\t\t><p>x</p></CollapsibleHeader>",
	"\t\t</div>",
	"\t);",
	"};",
	"",
)

// section renders one block of the deprecated pattern at the given indentation
func section(indent, title, key string, inner ...string) string {
	out := []string{
		indent + "<CollapsibleSection>",
		indent + "\t<CollapsibleHeaderButton onClick={() => toggleSection('" + key + "')}>",
		indent + "\t\t<CollapsibleTitle>",
		indent + "\t\t\t<FiInfo /> " + title,
		indent + "\t\t</CollapsibleTitle>",
		indent + "\t\t<CollapsibleToggleIcon $collapsed={collapsedSections." + key + "}>",
		indent + "\t\t\t<FiChevronDown />",
		indent + "\t\t</CollapsibleToggleIcon>",
		indent + "\t</CollapsibleHeaderButton>",
		indent + "\t{!collapsedSections." + key + " && (",
		indent + "\t\t<CollapsibleContent>",
	}
	out = append(out, inner...)
	out = append(out,
		indent+"\t\t</CollapsibleContent>",
		indent+"\t)}",
		indent+"</CollapsibleSection>",
	)
	return lines(out...)
}

// page wraps body in a component with the icon import in place
func page(body string) string {
	return lines(
		"import React from 'react';",
		"import { FiCheckCircle, FiChevronDown, FiInfo } from 'react-icons/fi';",
		"import { themeService } from '../../services/themeService';",
		"",
		"export const Page = () => (",
		"\t<div>",
		body,
		"\t</div>",
		");",
		"",
	)
}
