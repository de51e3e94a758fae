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

	"github.com/walteh/codemodrc/pkg/collapsible"
	"github.com/walteh/codemodrc/pkg/status"
)

var _ Operation = (*migrateOperation)(nil)

// 🚚 NewMigrateOperation creates the collapsible section migration
func NewMigrateOperation(opts Options, migrateOpts collapsible.Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	m, err := collapsible.New(migrateOpts)
	if err != nil {
		return nil, errors.Errorf("creating migrator: %w", err)
	}
	return &migrateOperation{BaseOperation: base, migrator: m}, nil
}

// 🚚 migrateOperation rewrites deprecated collapsible sections file by file
type migrateOperation struct {
	BaseOperation
	migrator *collapsible.Migrator
}

func (op *migrateOperation) Name() string { return "migrate" }

// 📄 ProcessFile migrates one file
func (op *migrateOperation) ProcessFile(ctx context.Context, path string) status.FileReport {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	r := status.FileReport{Path: path}

	content, err := op.FileMgr.ReadFile(ctx, path)
	if err != nil {
		return failed(r, errors.Errorf("reading %s: %w", path, err))
	}
	before := string(content)

	res, err := op.migrator.Migrate(logger.WithContext(ctx), before)
	if res != nil {
		r.BlocksFound = res.Found
		r.BlocksConverted = res.Converted
		r.Warnings = res.Warnings
	}
	if err != nil {
		if errors.Is(err, collapsible.ErrMissingIconImport) || errors.Is(err, collapsible.ErrNoImports) {
			logger.Debug().Err(err).Msg("skipping file")
			r.Status = status.StatusSkipped
			r.Err = err
			return r
		}
		return failed(r, errors.Errorf("migrating %s: %w", path, err))
	}

	switch {
	case res.Found == 0:
		r.Status = status.StatusNoMatch
		return r
	case !res.Changed:
		r.Status = status.StatusUnchanged
		return r
	}

	r.Status = status.StatusMigrated
	op.commit(ctx, &r, before, res.Text)
	return r
}
