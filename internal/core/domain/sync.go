package domain

import "time"

// SyncMode describes which tracked queries a run pushes.
type SyncMode string

const (
	// ModeFull pushes every tracked query.
	ModeFull SyncMode = "full"

	// ModeChangedOnly pushes the tracked queries whose files changed.
	ModeChangedOnly SyncMode = "changed-only"
)

// Manifest is the parsed list of tracked queries.
type Manifest struct {
	// QueryIDs are the tracked IDs in declaration order. Duplicates are kept.
	QueryIDs []QueryID

	// Skipped holds the raw manifest values that could not be coerced
	// to a query ID.
	Skipped []string
}

// Plan is the outcome of sync planning for one run.
type Plan struct {
	// Mode is the selected sync mode.
	Mode SyncMode

	// Defaulted is true when full mode was chosen because no changed
	// query IDs were available, rather than requested explicitly.
	Defaulted bool

	// Targets are the query IDs to push, in manifest order.
	Targets []QueryID

	// Tracked is the number of IDs declared in the manifest.
	Tracked int

	// Changed are the query IDs parsed from the changed-file list, sorted.
	Changed []QueryID

	// Untracked are changed IDs absent from the manifest, sorted.
	Untracked []QueryID

	// NothingToDo is true when changed-only planning selected no targets.
	NothingToDo bool
}

// SyncConfig carries everything a sync run needs. It replaces ambient
// process state so that runs can be driven from tests and watch mode.
type SyncConfig struct {
	// ManifestPath is the path of the YAML manifest.
	ManifestPath string

	// QueriesDir is the directory holding <name>___<id>.sql files.
	QueriesDir string

	// FullSync requests a full sync regardless of changed files.
	FullSync bool

	// ChangedFiles is the raw comma-separated changed file list.
	ChangedFiles string

	// ContinueOnError isolates per-query failures instead of aborting.
	ContinueOnError bool

	// DryRun plans and matches files without calling the query service.
	DryRun bool
}

// QueryFailure records a query that failed when ContinueOnError is set.
type QueryFailure struct {
	ID  QueryID
	Err error
}

// SyncResult summarises one sync run.
type SyncResult struct {
	// Plan is the plan the run executed. Nil when the manifest was empty.
	Plan *Plan

	// Updated are the queries pushed (or, in a dry run, that would be pushed).
	Updated []QueryID

	// Missing are target queries without a local file.
	Missing []QueryID

	// Failed are the queries that failed under ContinueOnError.
	Failed []QueryFailure

	// Skipped is true when the run ended early with nothing to do.
	Skipped bool

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the run took.
func (r *SyncResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
