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

// NewReplaceCmd creates the replace command
func NewReplaceCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace [files...]",
		Short: "Apply the configured literal replacements",
		Long: `Replace applies the ordered (from, to) table of the replace section to each
file. Rules with a file_filter_glob only touch matching files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "replace").Logger().WithContext(cmd.Context())

			if o.Config.Replace == nil {
				return errors.Errorf("no replace section in config")
			}

			files, err := resolveFiles(ctx, o, args, o.Config.Replace.Files)
			if err != nil {
				return err
			}

			fm := status.New(".")
			op, err := operation.NewReplaceOperation(operation.Options{
				FileMgr: fm,
				DryRun:  o.Config.DryRun,
				Root:    o.Config.Root,
			}, operation.ReplaceRules(o.Config.Replace.Rules))
			if err != nil {
				return errors.Errorf("creating replace operation: %w", err)
			}

			return runBatch(ctx, o, fm, op, files)
		},
	}

	return cmd
}
