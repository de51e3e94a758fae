/*
Package operation runs codemodrc's file transformations over a batch of files.

	+-------------+      +--------------+      +-------------+
	|   Runner    | ---> |  Operation   | ---> | FileManager |
	| (errgroup)  |      | (per file)   |      |  (status)   |
	+------+------+      +------+-------+      +-------------+
	       |                    |
	       v                    v
	+-------------+      +--------------+
	|  Reporter   |      | collapsible  |
	| (log/track) |      | text/sitegen |
	+-------------+      +--------------+

🎯 Purpose:
- Migrates deprecated collapsible sections file by file
- Applies literal replacement tables
- Generates per-entry pages from templates

🔄 Flow:
1. The runner hands each file to the operation, at most N at a time
2. The operation reads, transforms, and writes only on change (never in dry-run)
3. Every outcome becomes a status.FileReport, failures included
4. Reports come back in input order and stream to the Reporter as they finish

⚡ Failure isolation:
An unreadable file, a file without the icon import, or a failed write is recorded
on its own report. The batch always continues.

🔍 Example:

	op, err := operation.NewMigrateOperation(operation.Options{FileMgr: status.New(".")}, cfg.MigrateOptions())
	if err != nil {
		return err
	}
	reports := operation.NewRunner(cfg.Concurrency, reporter).Run(ctx, op, files)
*/
package operation
