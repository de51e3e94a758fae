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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemodrc/cmd/codemodrc/commands"
	"github.com/walteh/codemodrc/cmd/codemodrc/opts"
	"github.com/walteh/codemodrc/pkg/config"
	"github.com/walteh/codemodrc/pkg/log"
)

// rootFlags are the flags shared by every command
type rootFlags struct {
	configFile  string
	debug       bool
	dryRun      bool
	concurrency int
	root        string
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	cmd.PersistentFlags().StringVarP(&f.configFile, "config", "c", config.DefaultPath, "config file path (yaml, hcl or json)")
	cmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&f.dryRun, "dry-run", false, "report and diff without writing files")
	cmd.PersistentFlags().IntVar(&f.concurrency, "concurrency", 0, "files processed at once (overrides config)")
	cmd.PersistentFlags().StringVar(&f.root, "root", "", "discovery root (overrides config)")
}

// setupLogging builds the context logger based on flags
func setupLogging(ctx context.Context, f *rootFlags, stderr io.Writer) context.Context {
	level := zerolog.InfoLevel
	if f.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// newRootOpts loads the config and applies flag overrides
func newRootOpts(ctx context.Context, cmd *cobra.Command, f *rootFlags, stdout io.Writer) (*opts.RootOpts, error) {
	path := f.configFile
	if !cmd.Flags().Changed("config") {
		path = ""
	}
	cfg, err := config.LoadOrDefault(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = f.root
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}

	level := zerolog.InfoLevel
	if f.debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config: cfg,
		Logger: log.New(stdout, level),
	}, nil
}

// newRootCmd builds the command tree writing to stdout and stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "codemodrc",
		Short: "Source codemods for React pages",
		Long: `codemodrc rewrites React page sources in place: it migrates deprecated
collapsible sections to CollapsibleHeader, applies literal replacement tables,
and generates per-entry pages from templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags, stderr)
			cmd.SetContext(ctx)

			loaded, err := newRootOpts(ctx, cmd, flags, stdout)
			if err != nil {
				return err
			}
			*o = *loaded

			zerolog.Ctx(ctx).Debug().Str("config", o.Config.Location()).Str("settings", o.Config.String()).Msg("configuration loaded")
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewMigrateCmd(o),
		commands.NewReplaceCmd(o),
		commands.NewGenerateCmd(o),
		newVersionCmd(stdout),
	)

	return rootCmd
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, opts.ErrFailures) {
			log.New(stderr, zerolog.InfoLevel).Error(err.Error())
		}
		return 1
	}
	return 0
}
