package driven

import (
	"context"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
)

// QueryService is the remote analytics query service.
// Errors are returned unchanged to the caller; the service does not retry.
type QueryService interface {
	// GetQuery fetches the metadata of a query.
	GetQuery(ctx context.Context, id domain.QueryID) (*domain.Query, error)

	// UpdateQuery overwrites the SQL body of a query.
	UpdateQuery(ctx context.Context, id domain.QueryID, sql string) error
}
