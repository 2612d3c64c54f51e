package domain

import "errors"

// Domain errors represent sync failures.
// These are distinct from transport errors raised by the query service.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrManifestNotFound indicates the manifest file does not exist.
	// The sync service treats it like an empty manifest.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrInvalidManifest indicates the manifest could not be parsed.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrQueriesDirNotFound indicates the local queries directory is missing.
	ErrQueriesDirNotFound = errors.New("queries directory not found")

	// ErrQueryFileNotFound indicates no local file matches a target query ID.
	ErrQueryFileNotFound = errors.New("query file not found")

	// ErrMissingAPIKey indicates the query service API key is not configured.
	ErrMissingAPIKey = errors.New("DUNE_API_KEY is not set")

	// ErrQueryServiceUnavailable indicates a remote call was needed but no
	// query service was configured (for example during a dry run).
	ErrQueryServiceUnavailable = errors.New("query service unavailable")

	// ErrSyncFailed indicates one or more queries failed to sync when
	// per-query isolation is enabled.
	ErrSyncFailed = errors.New("sync failed")
)
