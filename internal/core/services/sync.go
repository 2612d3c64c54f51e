package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driving"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncService = (*SyncService)(nil)

// SyncService runs the load, plan, match and execute stages.
type SyncService struct {
	manifest driven.ManifestLoader
	remote   driven.QueryService
	reporter driven.Reporter
	now      func() time.Time
}

// NewSyncService creates a sync service.
// remote may be nil; runs that need it then fail with
// domain.ErrQueryServiceUnavailable, while dry runs still work.
func NewSyncService(
	manifest driven.ManifestLoader,
	remote driven.QueryService,
	reporter driven.Reporter,
) *SyncService {
	return &SyncService{
		manifest: manifest,
		remote:   remote,
		reporter: reporter,
		now:      time.Now,
	}
}

// Sync pushes the selected query files for cfg.
func (s *SyncService) Sync(ctx context.Context, cfg domain.SyncConfig) (*domain.SyncResult, error) {
	startedAt := s.now()
	manifestName := filepath.Base(cfg.ManifestPath)

	// 1. Load tracked IDs
	logger.Section("Load")
	manifest, err := s.manifest.Load(ctx, cfg.ManifestPath)
	if err != nil && !errors.Is(err, domain.ErrManifestNotFound) {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	if manifest == nil {
		logger.Debug("Manifest %s not found", cfg.ManifestPath)
		manifest = &domain.Manifest{}
	}
	for _, raw := range manifest.Skipped {
		s.reporter.Warning("skipping non-numeric query id in %s: %q", manifestName, raw)
	}
	if len(manifest.QueryIDs) == 0 {
		s.reporter.Info("no query_ids configured in %s", manifestName)
		return s.finish(&domain.SyncResult{Skipped: true}, startedAt), nil
	}
	logger.Debug("Tracking %d query ids", len(manifest.QueryIDs))

	// 2. Plan targets
	logger.Section("Plan")
	plan := NewPlanner(s.reporter, manifestName).Plan(manifest.QueryIDs, cfg.FullSync, cfg.ChangedFiles)
	if plan.NothingToDo {
		return s.finish(&domain.SyncResult{Plan: &plan, Skipped: true}, startedAt), nil
	}

	// 3. Match local files
	logger.Section("Match")
	files, collisions, err := MatchQueryFiles(cfg.QueriesDir)
	if err != nil {
		return nil, err
	}
	for _, c := range collisions {
		s.reporter.Warning("query id %d matches several files, using %q (ignoring %q)", c.ID, c.Kept, c.Ignored)
	}
	logger.Debug("Matched %d query files in %s", len(files), cfg.QueriesDir)

	// 4. Push
	logger.Section("Execute")
	executor := NewExecutor(s.remote, s.reporter, WithContinueOnError(cfg.ContinueOnError))
	if cfg.DryRun {
		result := executor.Preview(plan.Targets, files)
		result.Plan = &plan
		return s.finish(result, startedAt), nil
	}

	result, err := executor.Execute(ctx, plan.Targets, files)
	if result != nil {
		result.Plan = &plan
		s.finish(result, startedAt)
		logger.Debug("Sync finished in %s: %d updated, %d missing, %d failed",
			result.Duration(), len(result.Updated), len(result.Missing), len(result.Failed))
	}
	return result, err
}

func (s *SyncService) finish(result *domain.SyncResult, startedAt time.Time) *domain.SyncResult {
	result.StartedAt = startedAt
	result.FinishedAt = s.now()
	return result
}
