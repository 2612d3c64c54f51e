package driven

import (
	"context"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
)

// ManifestLoader reads the list of tracked query IDs.
type ManifestLoader interface {
	// Load parses the manifest at path.
	// Returns domain.ErrManifestNotFound if the file does not exist.
	Load(ctx context.Context, path string) (*domain.Manifest, error)
}
