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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/cmd/codemodrc/opts"
	"github.com/walteh/codemodrc/pkg/log"
	"github.com/walteh/codemodrc/pkg/operation"
	"github.com/walteh/codemodrc/pkg/status"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one copy of the page templates per entry",
		Long: `Generate reads the entries file of the generate section and writes
<output>/<id>/<template> for each entry, filling __COMPANY__, __SHARED__
and __YEAR__. Paths resolve against the config file's directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "generate").Logger().WithContext(cmd.Context())

			if o.Config.Generate == nil {
				return errors.Errorf("no generate section in config")
			}

			base := "."
			if loc := o.Config.Location(); loc != "" {
				base = filepath.Dir(loc)
			}
			fm := status.New(base)

			o.Logger.StartRun(ctx, log.Run{
				Command: "generate",
				Root:    base,
				Files:   len(o.Config.Generate.Templates),
				DryRun:  o.Config.DryRun,
			})

			reports, err := operation.Generate(ctx, operation.Options{
				FileMgr: fm,
				DryRun:  o.Config.DryRun,
			}, o.Config.Generate, reporter(o.Logger, fm))
			if err != nil {
				return err
			}

			return finish(ctx, o, reports)
		},
	}

	return cmd
}
