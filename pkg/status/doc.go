/*
Package status manages file storage and per-file reporting for codemodrc.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Reports |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads and atomically writes source files
- Records one FileReport per processed file
- Aggregates reports into a Summary value
- Renders reports and dry-run diffs for the console

🔄 Flow:
1. Receives migrated content from operation
2. Writes it through a temp file and rename when it changed
3. Builds the FileReport (status, block counts, warnings, diff)
4. Hands the report to the console reporter

⚡ Key Responsibilities:
- File system operations
- Status classification (migrated, unchanged, no-match, skipped, failed)
- Unified diffs for dry-run
- Error formatting for I/O

🤝 Interfaces:
- FileManager: Handles file operations
- FileFormatter: Formats report messages

🔍 Example:

	mgr := status.New(root)

	content, err := mgr.ReadFile(ctx, "src/Flow.tsx")

	if err := mgr.WriteFileAtomic(ctx, "src/Flow.tsx", migrated); err != nil {
		return err
	}

	summary := status.Summarize(reports)
*/
package status
