package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driving"
)

// Dependencies builds the services a command needs. The constructors run
// after settings are resolved, so they receive the final values.
type Dependencies struct {
	Stdout io.Writer
	Stderr io.Writer

	// Getenv reads the process environment after .env loading.
	Getenv func(string) string

	// NewSyncService wires the sync pipeline. remote is nil for dry runs.
	NewSyncService func(remote driven.QueryService, reporter driven.Reporter) driving.SyncService

	NewQueryService func(s Settings) (driven.QueryService, error)
	NewChangeSource func(ctx context.Context, s Settings) (driven.ChangeSource, error)
	NewWatcher      func(dir string, debounce time.Duration) (driven.ChangeWatcher, error)
}

func (d *Dependencies) stdout() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

func (d *Dependencies) stderr() io.Writer {
	if d.Stderr == nil {
		return os.Stderr
	}
	return d.Stderr
}

func (d *Dependencies) getenv(key string) string {
	if d.Getenv == nil {
		return os.Getenv(key)
	}
	return d.Getenv(key)
}
