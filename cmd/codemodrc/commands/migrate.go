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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/cmd/codemodrc/opts"
	"github.com/walteh/codemodrc/pkg/operation"
	"github.com/walteh/codemodrc/pkg/status"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [files...]",
		Short: "Rewrite deprecated collapsible sections into CollapsibleHeader",
		Long: `Migrate replaces every CollapsibleSection / CollapsibleHeaderButton /
CollapsibleContent block with a single CollapsibleHeader element.
It will:
1. Find each block and its title
2. Pick an icon and theme from the title keywords
3. Rebuild the block, keeping its content untouched
4. Add the CollapsibleHeader and icon imports

Files named on the command line replace the configured files and discovery.
Blocks it cannot parse are left as they are and reported as warnings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "migrate").Logger().WithContext(cmd.Context())

			files, err := resolveFiles(ctx, o, args, o.Config.Files)
			if err != nil {
				return err
			}

			fm := status.New(".")
			op, err := operation.NewMigrateOperation(operation.Options{
				FileMgr: fm,
				DryRun:  o.Config.DryRun,
				Root:    o.Config.Root,
			}, o.Config.MigrateOptions())
			if err != nil {
				return errors.Errorf("creating migrate operation: %w", err)
			}

			return runBatch(ctx, o, fm, op, files)
		},
	}

	return cmd
}
