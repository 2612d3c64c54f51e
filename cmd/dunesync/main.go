// Command dunesync pushes local Dune query SQL files to Dune.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VaitaR/DuneQueryRepo/internal/adapters/driven/manifest"
	"github.com/VaitaR/DuneQueryRepo/internal/adapters/driven/watcher"
	"github.com/VaitaR/DuneQueryRepo/internal/adapters/driving/cli"
	"github.com/VaitaR/DuneQueryRepo/internal/connectors/dune"
	"github.com/VaitaR/DuneQueryRepo/internal/connectors/git"
	"github.com/VaitaR/DuneQueryRepo/internal/connectors/github"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driving"
	"github.com/VaitaR/DuneQueryRepo/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, newDependencies(), os.Args[1:])
	stop()
	os.Exit(code)
}

func newDependencies() *cli.Dependencies {
	return &cli.Dependencies{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,

		NewSyncService: func(remote driven.QueryService, reporter driven.Reporter) driving.SyncService {
			return services.NewSyncService(manifest.NewLoader(), remote, reporter)
		},

		NewQueryService: func(s cli.Settings) (driven.QueryService, error) {
			return dune.NewClient(s.APIKey,
				dune.WithBaseURL(s.BaseURL),
				dune.WithTimeout(s.RequestTimeout),
				dune.WithUserAgent("dunesync/"+cli.Version()),
			)
		},

		NewChangeSource: func(ctx context.Context, s cli.Settings) (driven.ChangeSource, error) {
			switch s.Changes {
			case cli.ChangesGitHub:
				owner, repo, err := github.ParseRepository(s.GitHubRepository)
				if err != nil {
					return nil, err
				}
				client := github.NewClientWithToken(ctx, s.GitHubToken)
				return github.NewCompareSource(client, owner, repo, s.Base, s.Head), nil
			default:
				// git diff prints paths relative to the repository root from
				// any directory inside it.
				return git.NewDiffSource(s.QueriesDir, s.Base, s.Head), nil
			}
		},

		NewWatcher: func(dir string, debounce time.Duration) (driven.ChangeWatcher, error) {
			return watcher.New(dir, debounce)
		},
	}
}
