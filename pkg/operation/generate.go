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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/pkg/config"
	"github.com/walteh/codemodrc/pkg/sitegen"
	"github.com/walteh/codemodrc/pkg/status"
)

// 🏗️ Generate writes the per-entry pages described by args and reports each page
func Generate(ctx context.Context, opts Options, args *config.GenerateArgs, reporter Reporter) ([]status.FileReport, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	if args == nil {
		return nil, errors.Errorf("generate section is required")
	}

	reports, err := sitegen.Generate(ctx, base.FileMgr, sitegen.Options{
		Entries:   args.Entries,
		Templates: args.Templates,
		Output:    args.Output,
		Shared:    args.Shared,
		Year:      args.Year,
		DryRun:    base.DryRun,
	})
	if reporter != nil {
		for _, r := range reports {
			reporter.Report(ctx, r)
		}
	}
	if err != nil {
		return reports, errors.Errorf("generating pages: %w", err)
	}
	return reports, nil
}
