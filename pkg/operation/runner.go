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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/codemodrc/pkg/status"
)

// 🏃 OperationRunner executes an operation over a batch of files
type OperationRunner struct {
	concurrency int
	reporter    Reporter
}

// 🏗️ NewRunner creates a runner with at most concurrency files in flight.
// reporter may be nil.
func NewRunner(concurrency int, reporter Reporter) *OperationRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &OperationRunner{
		concurrency: concurrency,
		reporter:    reporter,
	}
}

// 🏃 Run processes files and returns one report per file, in input order. A
// failing file never stops the batch; a canceled context marks every file not
// yet started as failed.
func (r *OperationRunner) Run(ctx context.Context, op Operation, files []string) []status.FileReport {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("operation", op.Name()).Int("files", len(files)).Int("concurrency", r.concurrency).Msg("starting run")

	reports := make([]status.FileReport, len(files))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, path := range files {
		g.Go(func() error {
			var rep status.FileReport
			if err := ctx.Err(); err != nil {
				rep = status.FileReport{
					Path:   path,
					Status: status.StatusFailed,
					Err:    errors.Errorf("%s canceled: %w", op.Name(), err),
				}
			} else {
				rep = op.ProcessFile(ctx, path)
			}
			reports[i] = rep
			if r.reporter != nil {
				r.reporter.Report(ctx, rep)
			}
			return nil
		})
	}
	// workers never return errors
	_ = g.Wait()

	return reports
}
