package driven

import "context"

// ChangeSource lists the files changed since some reference point.
// Paths are returned as reported by the source; only base names matter
// to the planner.
type ChangeSource interface {
	// Name identifies the source in logs (env, git, github).
	Name() string

	// ChangedFiles returns the changed file paths.
	ChangedFiles(ctx context.Context) ([]string, error)
}

// ChangeWatcher streams batches of changed query files.
// Batches are debounced; each contains distinct paths.
type ChangeWatcher interface {
	// Changes returns the channel of change batches.
	// It is closed when the watcher is closed.
	Changes() <-chan []string

	// Errors returns the channel of watch errors.
	Errors() <-chan error

	// Close stops watching and releases resources.
	Close() error
}
