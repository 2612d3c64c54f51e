// Package cli implements the dunesync command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/VaitaR/DuneQueryRepo/internal/adapters/driven/config/file"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

// NewRootCommand creates the dunesync root command. Running it without a
// subcommand performs a sync.
func NewRootCommand(deps *Dependencies) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dunesync",
		Short: "Push local Dune query SQL files to Dune",
		Long: `dunesync keeps Dune queries in sync with SQL files in a repository.

Tracked query IDs are listed under query_ids in queries.yml. Each query's SQL
lives in queries/<name>___<id>.sql. By default every tracked query is pushed;
set CHANGED_QUERY_FILES (or use --changes git|github) to push only the
queries whose files changed, and FULL_SYNC=true to force a full sync.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger.SetVerbose(opts.verbose)
			if _, err := logger.ParseColorMode(opts.color); err != nil {
				return WrapExitError(ExitUsage, "", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), cmd, opts, deps)
		},
	}
	cmd.SetOut(deps.stdout())
	cmd.SetErr(deps.stderr())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "", err)
	})

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", file.DefaultFileName, "settings file (TOML)")
	pf.StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default: .env next to the manifest)")
	pf.StringVar(&opts.manifestPath, "manifest", DefaultManifestPath, "manifest listing tracked query ids")
	pf.StringVar(&opts.queriesDir, "queries-dir", DefaultQueriesDir, "directory containing <name>___<id>.sql files")
	pf.StringVar(&opts.color, "color", string(logger.ColorAuto), "colorize output (auto|always|never)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs to stderr")

	addSyncFlags(cmd, opts)

	cmd.AddCommand(newSyncCommand(opts, deps))
	cmd.AddCommand(newPlanCommand(opts, deps))
	cmd.AddCommand(newWatchCommand(opts, deps))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs dunesync with args (without the program name) and returns
// the process exit code.
func Execute(ctx context.Context, deps *Dependencies, args []string) int {
	cmd := NewRootCommand(deps)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		logger.NewConsole(deps.stderr(), logger.ColorAuto).Error("%v", err)
	}
	return GetExitCode(err)
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitUsage, "", err)
		}
		return nil
	}
}

// newConsole creates the reporter for a command's output.
func newConsole(opts *options, deps *Dependencies) *logger.Console {
	// Validated in PersistentPreRunE.
	mode, _ := logger.ParseColorMode(opts.color)
	return logger.NewConsole(deps.stdout(), mode)
}
