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

package operation

import (
	"context"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/pkg/status"
)

// 🎯 Operation transforms one file at a time. ProcessFile never returns an error:
// every failure is recorded on the report so the batch can continue.
type Operation interface {
	Name() string
	ProcessFile(ctx context.Context, path string) status.FileReport
}

// 📣 Reporter receives each report as soon as its file is done
type Reporter interface {
	Report(ctx context.Context, r status.FileReport)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, r status.FileReport)

func (f ReporterFunc) Report(ctx context.Context, r status.FileReport) { f(ctx, r) }

// 🔧 Options contains what every operation needs
type Options struct {
	// FileMgr reads and writes the files
	FileMgr status.FileManager
	// DryRun computes reports and diffs without writing
	DryRun bool
	// Root is the discovery root, file filters match paths relative to it
	Root string
}

// 🧱 BaseOperation holds the shared options
type BaseOperation struct {
	FileMgr status.FileManager
	DryRun  bool
	Root    string
}

// 🏭 NewBaseOperation checks opts and wraps them
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.FileMgr == nil {
		return BaseOperation{}, errors.Errorf("file manager is required")
	}
	return BaseOperation{FileMgr: opts.FileMgr, DryRun: opts.DryRun, Root: opts.Root}, nil
}

// commit writes content over path unless dry-run, filling Changed, Diff and the
// failure status on r. The caller sets the success status.
func (op *BaseOperation) commit(ctx context.Context, r *status.FileReport, before, after string) {
	r.Changed = true
	if op.DryRun {
		r.Diff = status.UnifiedDiff(r.Path, before, after)
		return
	}
	if err := op.FileMgr.WriteFileAtomic(ctx, r.Path, []byte(after)); err != nil {
		r.Status = status.StatusFailed
		r.Err = errors.Errorf("writing %s: %w", r.Path, err)
	}
}

// relative returns path relative to Root when it lies below it
func (op *BaseOperation) relative(path string) string {
	if op.Root == "" {
		return path
	}
	rel, err := filepath.Rel(op.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func failed(r status.FileReport, err error) status.FileReport {
	r.Status = status.StatusFailed
	r.Err = err
	return r
}
