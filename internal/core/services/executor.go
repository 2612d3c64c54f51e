package services

import (
	"context"
	"fmt"
	"os"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

// Executor pushes matched query files to the query service.
type Executor struct {
	remote          driven.QueryService
	reporter        driven.Reporter
	readFile        func(name string) ([]byte, error)
	continueOnError bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithContinueOnError isolates per-query failures: they are reported and
// recorded, and the remaining queries are still processed.
func WithContinueOnError(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.continueOnError = enabled
	}
}

// WithFileReader replaces os.ReadFile. Useful for tests.
func WithFileReader(read func(name string) ([]byte, error)) ExecutorOption {
	return func(e *Executor) {
		e.readFile = read
	}
}

// NewExecutor creates an executor. remote may be nil when only Preview is used.
func NewExecutor(remote driven.QueryService, reporter driven.Reporter, opts ...ExecutorOption) *Executor {
	e := &Executor{
		remote:   remote,
		reporter: reporter,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute processes targets in order. A missing local file is reported and
// skipped. By default the first remote or read failure aborts the run;
// with continue-on-error it is recorded in the result and processing
// continues, and ErrSyncFailed is returned at the end.
func (e *Executor) Execute(
	ctx context.Context,
	targets []domain.QueryID,
	files map[domain.QueryID]domain.QueryFile,
) (*domain.SyncResult, error) {
	if e.remote == nil {
		return nil, domain.ErrQueryServiceUnavailable
	}

	result := &domain.SyncResult{}
	for _, id := range targets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := e.syncOne(ctx, id, files, result)
		if err == nil {
			continue
		}
		if !e.continueOnError {
			return result, err
		}
		e.reporter.Error("query %d: %v", id, err)
		result.Failed = append(result.Failed, domain.QueryFailure{ID: id, Err: err})
	}

	if len(result.Failed) > 0 {
		e.reporter.Info("%d of %d queries failed", len(result.Failed), len(targets))
		return result, fmt.Errorf("%w: %d of %d queries failed", domain.ErrSyncFailed, len(result.Failed), len(targets))
	}
	return result, nil
}

// syncOne fetches, reads and updates a single query.
func (e *Executor) syncOne(
	ctx context.Context,
	id domain.QueryID,
	files map[domain.QueryID]domain.QueryFile,
	result *domain.SyncResult,
) error {
	query, err := e.remote.GetQuery(ctx, id)
	if err != nil {
		return fmt.Errorf("get query %d: %w", id, err)
	}

	remoteID := query.ID
	if remoteID == 0 {
		remoteID = id
	}
	e.reporter.Processing("query %d, %s", remoteID, query.Name)

	file, ok := files[id]
	if !ok {
		e.reporter.Error("file not found, query id %d", remoteID)
		result.Missing = append(result.Missing, id)
		return nil
	}

	content, err := e.readFile(file.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", file.Path, err)
	}
	logger.Debug("Read %d bytes from %s", len(content), file.Path)

	if err := e.remote.UpdateQuery(ctx, remoteID, string(content)); err != nil {
		return fmt.Errorf("update query %d: %w", remoteID, err)
	}

	e.reporter.Success("updated query %d to dune", remoteID)
	result.Updated = append(result.Updated, id)
	return nil
}

// Preview reports what Execute would do without calling the query service.
func (e *Executor) Preview(targets []domain.QueryID, files map[domain.QueryID]domain.QueryFile) *domain.SyncResult {
	result := &domain.SyncResult{}
	for _, id := range targets {
		file, ok := files[id]
		if !ok {
			e.reporter.Error("file not found, query id %d", id)
			result.Missing = append(result.Missing, id)
			continue
		}
		e.reporter.Info("would update query %d from %s", id, file.Name)
		result.Updated = append(result.Updated, id)
	}
	return result
}
