package cli

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

func newSyncCommand(opts *options, deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push query files to Dune",
		Long: `Pushes the SQL of tracked queries to Dune.

Sync mode is chosen in this order:
  1. full sync when FULL_SYNC (or --full) is truthy
  2. changed-only when changed files map to tracked query ids
  3. full sync otherwise

Exit codes:
  0  completed, or nothing to do
  1  a query failed to sync
  2  invalid flags or settings, or DUNE_API_KEY is not set`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), cmd, opts, deps)
		},
	}
	addSyncFlags(cmd, opts)
	return cmd
}

// addSyncFlags registers the flags shared by the root and sync commands.
func addSyncFlags(cmd *cobra.Command, opts *options) {
	addSelectionFlags(cmd, opts)
	f := cmd.Flags()
	f.DurationVar(&opts.timeout, "timeout", 0, "Dune API request timeout (default 10s, or DUNE_API_REQUEST_TIMEOUT)")
	f.BoolVar(&opts.continueOnError, "continue-on-error", false, "keep going after a query fails and report failures at the end")
	f.BoolVar(&opts.dryRun, "dry-run", false, "show what would be pushed without calling Dune")
	f.BoolVar(&opts.failOnMissing, "fail-on-missing", false, "exit non-zero when a target query has no local file")
}

// addSelectionFlags registers the flags that decide which queries are targeted.
func addSelectionFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.BoolVar(&opts.full, "full", false, "push every tracked query (overrides FULL_SYNC)")
	f.StringVar(&opts.changed, "changed", "", "comma-separated changed files (overrides CHANGED_QUERY_FILES)")
	f.StringVar(&opts.changes, "changes", ChangesEnv, "where changed files come from (env|git|github)")
	f.StringVar(&opts.base, "base", "", "base commit for --changes git|github (git default HEAD~1)")
	f.StringVar(&opts.head, "head", "", "head commit for --changes git|github (git default HEAD)")
}

func runSync(ctx context.Context, cmd *cobra.Command, opts *options, deps *Dependencies) error {
	console := newConsole(opts, deps)

	settings, err := resolveSettings(cmd, opts, deps)
	if err != nil {
		return err
	}
	if err := settings.validateChanges(); err != nil {
		return err
	}

	proceed, err := resolveChangedFiles(ctx, &settings, deps, console)
	if err != nil || !proceed {
		return err
	}

	var remote driven.QueryService
	if !settings.DryRun {
		remote, err = newQueryService(settings, deps)
		if err != nil {
			return err
		}
	}

	svc := deps.NewSyncService(remote, console)
	result, err := svc.Sync(ctx, settings.SyncConfig())
	if err != nil {
		return err
	}

	if result != nil && !result.Skipped {
		logger.Debug("Updated %d, missing %d in %s",
			len(result.Updated), len(result.Missing), result.Duration())
		if settings.FailOnMissing && len(result.Missing) > 0 {
			return fmt.Errorf("%w: %s", domain.ErrQueryFileNotFound, domain.FormatQueryIDs(result.Missing))
		}
	}
	return nil
}

// newQueryService builds the Dune client. A missing API key keeps its
// sentinel so it maps to the usage exit code.
func newQueryService(s Settings, deps *Dependencies) (driven.QueryService, error) {
	remote, err := deps.NewQueryService(s)
	if err != nil {
		if errors.Is(err, domain.ErrMissingAPIKey) {
			return nil, err
		}
		return nil, WrapExitError(ExitUsage, "configure Dune client", err)
	}
	return remote, nil
}

// resolveChangedFiles fills s.ChangedFiles from a git or github source.
// It returns false when the source reports no changes and the run should
// stop without error.
func resolveChangedFiles(ctx context.Context, s *Settings, deps *Dependencies, console driven.Reporter) (bool, error) {
	if s.Changes == ChangesEnv || s.FullSync {
		return true, nil
	}
	if deps.NewChangeSource == nil {
		return false, NewExitError(ExitUsage, fmt.Sprintf("changes source %q is not available", s.Changes))
	}

	source, err := deps.NewChangeSource(ctx, *s)
	if err != nil {
		return false, WrapExitError(ExitUsage, "configure changes source", err)
	}

	paths, err := source.ChangedFiles(ctx)
	if err != nil {
		return false, fmt.Errorf("list changed files from %s: %w", source.Name(), err)
	}
	queryPaths := queryFilePaths(paths)
	logger.Debug("%d changed files from %s, %d query files", len(paths), source.Name(), len(queryPaths))
	if len(queryPaths) == 0 {
		console.Info("no query files changed between %s and %s. Nothing to update.", s.Base, s.Head)
		return false, nil
	}

	s.ChangedFiles = strings.Join(queryPaths, ",")
	return true, nil
}

// queryFilePaths keeps the paths whose base name encodes a query ID.
func queryFilePaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if _, ok := domain.ExtractQueryID(path.Base(filepath.ToSlash(p))); ok {
			out = append(out, p)
		}
	}
	return out
}
