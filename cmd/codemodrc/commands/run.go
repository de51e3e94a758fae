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

package commands

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/cmd/codemodrc/opts"
	"github.com/walteh/codemodrc/pkg/discover"
	"github.com/walteh/codemodrc/pkg/log"
	"github.com/walteh/codemodrc/pkg/operation"
	"github.com/walteh/codemodrc/pkg/status"
)

// resolveFiles picks positional args, then configured files, then discovery
func resolveFiles(ctx context.Context, o *opts.RootOpts, args, configured []string) ([]string, error) {
	if len(args) > 0 {
		return discover.Explicit(args), nil
	}
	if len(configured) > 0 {
		return discover.Explicit(configured), nil
	}
	files, err := discover.Files(ctx, discover.Options{
		Root:    o.Config.Root,
		Include: o.Config.Include,
		Exclude: o.Config.Exclude,
	})
	if err != nil {
		return nil, errors.Errorf("discovering files: %w", err)
	}
	return files, nil
}

// reporter prints each report and mirrors it into the context logger
func reporter(l *log.Logger, fm *status.Manager) operation.Reporter {
	return operation.ReporterFunc(func(ctx context.Context, r status.FileReport) {
		l.LogFileReport(ctx, r)
		fm.Track(ctx, r)
	})
}

// runBatch runs op over files with the run header, per-file lines and summary
func runBatch(ctx context.Context, o *opts.RootOpts, fm *status.Manager, op operation.Operation, files []string) error {
	o.Logger.StartRun(ctx, log.Run{
		Command: op.Name(),
		Root:    o.Config.Root,
		Files:   len(files),
		DryRun:  o.Config.DryRun,
	})

	if len(files) == 0 {
		o.Logger.Warningf("no files to %s under %s", op.Name(), o.Config.Root)
	}

	reports := operation.NewRunner(o.Config.Concurrency, reporter(o.Logger, fm)).Run(ctx, op, files)

	return finish(ctx, o, reports)
}

func finish(ctx context.Context, o *opts.RootOpts, reports []status.FileReport) error {
	summary := status.Summarize(reports)
	o.Logger.EndRun(ctx, summary)
	if summary.HasFailures() {
		return errors.Errorf("%d of %d files: %w", summary.Failed, summary.Files, opts.ErrFailures)
	}
	if summary.Files > 0 {
		o.Logger.Successf("%d of %d files changed", summary.Migrated+summary.Created, summary.Files)
	}
	return nil
}
