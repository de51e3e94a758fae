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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 45 // Base width for filename
	statusWidth = 10 // Width for status text
	warnIndent  = 8  // spaces to indent warnings below a file
)

// 🎯 FormatReportLine formats a file report for console display
func FormatReportLine(r FileReport) string {
	var prefix string
	switch r.Status {
	case StatusMigrated, StatusCreated:
		prefix = color.GreenString("✓")
	case StatusUnchanged:
		prefix = color.YellowString("⟳")
	case StatusSkipped:
		prefix = color.YellowString("!")
	case StatusFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, r.Path)
	statusPart := fmt.Sprintf("%-*s", statusWidth, r.Status.String())

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		statusPart,
		reportDetails(r),
	), " ")
}

// FormatWarningLines formats a report's warnings, one indented line each
func FormatWarningLines(r FileReport) []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, strings.Repeat(" ", warnIndent)+color.YellowString("⚠ ")+w)
	}
	return out
}

func reportDetails(r FileReport) string {
	var parts []string
	if r.BlocksFound > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d blocks", r.BlocksConverted, r.BlocksFound))
	}
	if r.Replacements > 0 {
		parts = append(parts, fmt.Sprintf("%d replacements", r.Replacements))
	}
	if n := len(r.Warnings); n > 0 {
		parts = append(parts, color.YellowString("%d warnings", n))
	}
	if r.Err != nil {
		parts = append(parts, color.RedString("%v", r.Err))
	}
	return strings.Join(parts, ", ")
}
