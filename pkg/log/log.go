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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/codemodrc/pkg/status"
)

// 📦 Run describes one command invocation for the run header
type Run struct {
	Command string // migrate, replace, generate
	Root    string // directory the files resolve against
	Files   int    // number of files to process
	DryRun  bool
}

// 🎯 Logger handles console output with a structured zerolog mirror
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *Run
}

// 🏭 New creates a new logger. Mirrored events are written to stderr at debug level.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 StartRun prints the run header
func (l *Logger) StartRun(ctx context.Context, run Run) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &run

	fmt.Fprintf(l.console, "[%s %s]\n",
		run.Command,
		color.New(color.FgCyan).Sprint(run.Root))

	mode := "write"
	if run.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d files", run.Files),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Debug().
		Str("command", run.Command).
		Str("root", run.Root).
		Int("files", run.Files).
		Bool("dry_run", run.DryRun).
		Msg("starting run")
}

// 📝 LogFileReport prints one file line, its warnings, and its diff when present
func (l *Logger) LogFileReport(ctx context.Context, r status.FileReport) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatReportLine(r))
	for _, w := range status.FormatWarningLines(r) {
		fmt.Fprintln(l.console, w)
	}
	if r.Diff != "" {
		fmt.Fprint(l.console, colorDiff(r.Diff))
	}

	ev := l.zlog.Debug()
	if r.Err != nil {
		ev = ev.Err(r.Err)
	}
	ev.Str("path", r.Path).
		Str("status", r.Status.String()).
		Int("blocks_found", r.BlocksFound).
		Int("blocks_converted", r.BlocksConverted).
		Int("replacements", r.Replacements).
		Strs("warnings", r.Warnings).
		Msg("file report")
}

// 📝 EndRun prints the summary table of the current run
func (l *Logger) EndRun(ctx context.Context, s status.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(SummaryTable(s)).Srender()
	if err != nil {
		l.zlog.Error().Err(err).Msg("rendering summary table")
	} else {
		fmt.Fprintf(l.console, "\n%s\n", table)
	}

	l.zlog.Debug().
		Str("command", l.current.Command).
		Int("files", s.Files).
		Int("migrated", s.Migrated).
		Int("failed", s.Failed).
		Int("blocks_converted", s.BlocksConverted).
		Msg("run complete")

	l.current = nil
}

// SummaryTable returns the rows of the summary table, header first
func SummaryTable(s status.Summary) pterm.TableData {
	row := func(name string, n int) []string {
		return []string{name, strconv.Itoa(n)}
	}
	data := pterm.TableData{
		{"result", "count"},
		row("files", s.Files),
		row("migrated", s.Migrated),
		row("unchanged", s.Unchanged),
		row("no-match", s.NoMatch),
		row("skipped", s.Skipped),
		row("failed", s.Failed),
	}
	if s.Created > 0 {
		data = append(data, row("created", s.Created))
	}
	if s.BlocksFound > 0 {
		data = append(data,
			row("blocks found", s.BlocksFound),
			row("blocks converted", s.BlocksConverted),
			row("warnings", s.Warnings))
	}
	if s.Replacements > 0 {
		data = append(data, row("replacements", s.Replacements))
	}
	return data
}

func colorDiff(diff string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			sb.WriteString(color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			sb.WriteString(color.CyanString("%s", line))
		case strings.HasPrefix(line, "+"):
			sb.WriteString(color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			sb.WriteString(color.RedString("%s", line))
		default:
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
