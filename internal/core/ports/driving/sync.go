package driving

import (
	"context"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
)

// SyncService pushes local query files to the remote query service.
type SyncService interface {
	// Sync runs load, plan, match and execute for one configuration.
	// Early exits with nothing to do return a result with Skipped set and
	// a nil error.
	Sync(ctx context.Context, cfg domain.SyncConfig) (*domain.SyncResult, error)
}
