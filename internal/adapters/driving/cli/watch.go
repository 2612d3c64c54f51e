package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

func newWatchCommand(opts *options, deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Push query files whenever they are saved",
		Long: `Watches the queries directory and runs a changed-only sync for every
batch of saved query files. Runs until interrupted. A failing batch is
reported and watching continues.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, opts, deps)
		},
	}
	f := cmd.Flags()
	f.DurationVar(&opts.debounce, "debounce", 0, "quiet period before a batch is pushed (default 500ms)")
	f.DurationVar(&opts.timeout, "timeout", 0, "Dune API request timeout (default 10s, or DUNE_API_REQUEST_TIMEOUT)")
	f.BoolVar(&opts.continueOnError, "continue-on-error", false, "keep going after a query in a batch fails")
	f.BoolVar(&opts.dryRun, "dry-run", false, "show what would be pushed without calling Dune")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *options, deps *Dependencies) error {
	console := newConsole(opts, deps)

	settings, err := resolveSettings(cmd, opts, deps)
	if err != nil {
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

	w, err := deps.NewWatcher(settings.QueriesDir, settings.Debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	console.Info("watching %s for changes (Ctrl+C to stop)", settings.QueriesDir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case batch, ok := <-w.Changes():
			if !ok {
				return nil
			}
			logger.Debug("Watch batch: %v", batch)

			cfg := settings.SyncConfig()
			cfg.FullSync = false
			cfg.ChangedFiles = strings.Join(batch, ",")
			if _, err := svc.Sync(ctx, cfg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				console.Error("%v", err)
			}

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			console.Warning("watch error: %v", err)
		}
	}
}
