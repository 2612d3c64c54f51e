package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VaitaR/DuneQueryRepo/internal/adapters/driven/manifest"
	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driving"
	"github.com/VaitaR/DuneQueryRepo/internal/core/services"
)

// memRemote implements driven.QueryService in memory.
type memRemote struct {
	mu      sync.Mutex
	sql     map[domain.QueryID]string
	updates []domain.QueryID
	updated chan domain.QueryID
}

func newMemRemote() *memRemote {
	return &memRemote{
		sql:     make(map[domain.QueryID]string),
		updated: make(chan domain.QueryID, 16),
	}
}

func (m *memRemote) GetQuery(_ context.Context, id domain.QueryID) (*domain.Query, error) {
	return &domain.Query{ID: id, Name: fmt.Sprintf("query %d", id)}, nil
}

func (m *memRemote) UpdateQuery(_ context.Context, id domain.QueryID, sql string) error {
	m.mu.Lock()
	m.sql[id] = sql
	m.updates = append(m.updates, id)
	m.mu.Unlock()
	m.updated <- id
	return nil
}

func (m *memRemote) updatedIDs() []domain.QueryID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.QueryID(nil), m.updates...)
}

// stubChangeSource implements driven.ChangeSource.
type stubChangeSource struct {
	paths []string
	err   error
}

func (s *stubChangeSource) Name() string { return "stub" }

func (s *stubChangeSource) ChangedFiles(context.Context) ([]string, error) {
	return s.paths, s.err
}

// fakeWatcher implements driven.ChangeWatcher with channels the test drives.
type fakeWatcher struct {
	changes chan []string
	errors  chan error
	mu      sync.Mutex
	closed  bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{changes: make(chan []string), errors: make(chan error)}
}

func (w *fakeWatcher) Changes() <-chan []string { return w.changes }
func (w *fakeWatcher) Errors() <-chan error     { return w.errors }

func (w *fakeWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWatcher) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// harness is a project directory plus dependencies recording what the
// commands did.
type harness struct {
	t      *testing.T
	dir    string
	env    map[string]string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	remote *memRemote

	settings     *Settings
	changeSource *stubChangeSource
	watcher      *fakeWatcher
	watchDir     string
	debounce     time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		t:      t,
		dir:    dir,
		env:    map[string]string{"DUNE_API_KEY": "test-key"},
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
		remote: newMemRemote(),
	}
	h.write("queries.yml", "query_ids:\n  - 10\n  - 20\n  - 30\n")
	h.write("queries/a___10.sql", "select 10")
	h.write("queries/b___20.sql", "select 20")
	return h
}

func (h *harness) write(name, content string) {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o644))
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func (h *harness) deps() *Dependencies {
	return &Dependencies{
		Stdout: h.stdout,
		Stderr: h.stderr,
		Getenv: func(key string) string { return h.env[key] },
		NewSyncService: func(remote driven.QueryService, reporter driven.Reporter) driving.SyncService {
			return services.NewSyncService(manifest.NewLoader(), remote, reporter)
		},
		NewQueryService: func(s Settings) (driven.QueryService, error) {
			h.settings = &s
			if s.APIKey == "" {
				return nil, domain.ErrMissingAPIKey
			}
			return h.remote, nil
		},
		NewChangeSource: func(_ context.Context, s Settings) (driven.ChangeSource, error) {
			h.settings = &s
			if h.changeSource == nil {
				return nil, fmt.Errorf("no change source")
			}
			return h.changeSource, nil
		},
		NewWatcher: func(dir string, debounce time.Duration) (driven.ChangeWatcher, error) {
			h.watchDir = dir
			h.debounce = debounce
			return h.watcher, nil
		},
	}
}

// args puts the project flags after the given command line.
func (h *harness) args(args ...string) []string {
	return append(args,
		"--manifest", h.path("queries.yml"),
		"--queries-dir", h.path("queries"),
		"--config", h.path("dunesync.toml"),
		"--color", "never",
	)
}

func (h *harness) run(args ...string) int {
	return Execute(context.Background(), h.deps(), h.args(args...))
}

