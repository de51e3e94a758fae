package status

import (
	"fmt"
)

// FileFormatter defines how file reports and progress should be formatted
type FileFormatter interface {
	// FormatReport formats a one-line summary of a file report
	FormatReport(r FileReport) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatReport formats a file report with emojis
func (f *DefaultFileFormatter) FormatReport(r FileReport) string {
	switch r.Status {
	case StatusMigrated:
		if r.Replacements > 0 {
			return fmt.Sprintf("📝 Replaced %d in %s", r.Replacements, r.Path)
		}
		return fmt.Sprintf("📝 Migrated %s (%d/%d blocks)", r.Path, r.BlocksConverted, r.BlocksFound)
	case StatusCreated:
		return fmt.Sprintf("✨ Created %s", r.Path)
	case StatusNoMatch:
		return fmt.Sprintf("🔍 No match %s", r.Path)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s: %v", r.Path, r.Err)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s: %v", r.Path, r.Err)
	default:
		return fmt.Sprintf("👍 Unchanged %s", r.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
