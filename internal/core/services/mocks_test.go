package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// recordingReporter implements driven.Reporter and keeps every line.
type recordingReporter struct {
	lines []string
}

var _ driven.Reporter = (*recordingReporter)(nil)

func (r *recordingReporter) add(tag, format string, args ...any) {
	r.lines = append(r.lines, tag+": "+fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Info(format string, args ...any)    { r.add("INFO", format, args...) }
func (r *recordingReporter) Warning(format string, args ...any) { r.add("WARNING", format, args...) }
func (r *recordingReporter) Error(format string, args ...any)   { r.add("ERROR", format, args...) }
func (r *recordingReporter) Success(format string, args ...any) { r.add("SUCCESS", format, args...) }
func (r *recordingReporter) Processing(format string, args ...any) {
	r.add("PROCESSING", format, args...)
}
func (r *recordingReporter) SyncMode(format string, args ...any) { r.add("SYNC MODE", format, args...) }

// memQueryService implements driven.QueryService in memory.
type memQueryService struct {
	queries   map[domain.QueryID]*domain.Query
	getErr    map[domain.QueryID]error
	updateErr map[domain.QueryID]error
	gets      []domain.QueryID
	updates   []domain.QueryID
}

var _ driven.QueryService = (*memQueryService)(nil)

func newMemQueryService(ids ...domain.QueryID) *memQueryService {
	m := &memQueryService{
		queries:   make(map[domain.QueryID]*domain.Query),
		getErr:    make(map[domain.QueryID]error),
		updateErr: make(map[domain.QueryID]error),
	}
	for _, id := range ids {
		m.queries[id] = &domain.Query{ID: id, Name: fmt.Sprintf("query %d", id), SQL: "select 0"}
	}
	return m
}

func (m *memQueryService) GetQuery(_ context.Context, id domain.QueryID) (*domain.Query, error) {
	m.gets = append(m.gets, id)
	if err := m.getErr[id]; err != nil {
		return nil, err
	}
	q, ok := m.queries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *memQueryService) UpdateQuery(_ context.Context, id domain.QueryID, sql string) error {
	m.updates = append(m.updates, id)
	if err := m.updateErr[id]; err != nil {
		return err
	}
	q, ok := m.queries[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.SQL = sql
	q.Version++
	return nil
}

// stubManifestLoader implements driven.ManifestLoader.
type stubManifestLoader struct {
	manifest *domain.Manifest
	err      error
	paths    []string
}

var _ driven.ManifestLoader = (*stubManifestLoader)(nil)

func (s *stubManifestLoader) Load(_ context.Context, path string) (*domain.Manifest, error) {
	s.paths = append(s.paths, path)
	if s.err != nil {
		return nil, s.err
	}
	return s.manifest, nil
}

// writeQueryFiles creates files with the given contents in a temp dir.
func writeQueryFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}
