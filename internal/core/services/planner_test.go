package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
)

func TestPlanner_FullSyncRequested(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20, 30}

	plan := NewPlanner(reporter, "queries.yml").Plan(tracked, true, "queries/a___20.sql")

	assert.Equal(t, domain.ModeFull, plan.Mode)
	assert.False(t, plan.Defaulted)
	assert.Equal(t, tracked, plan.Targets)
	assert.Equal(t, []string{"SYNC MODE: full (FULL_SYNC=true)"}, reporter.lines)
}

func TestPlanner_FullSyncStillWarnsOnUnparseableFiles(t *testing.T) {
	reporter := &recordingReporter{}

	plan := NewPlanner(reporter, "queries.yml").Plan([]domain.QueryID{1}, true, "notes.md")

	assert.Equal(t, domain.ModeFull, plan.Mode)
	assert.Equal(t, []string{
		`WARNING: could not parse query id from changed file "notes.md"`,
		"SYNC MODE: full (FULL_SYNC=true)",
	}, reporter.lines)
}

func TestPlanner_ChangedOnlyPreservesTrackedOrder(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20, 30}

	plan := NewPlanner(reporter, "queries.yml").Plan(tracked, false, "q/c___30.sql,q/a___10.sql")

	assert.Equal(t, domain.ModeChangedOnly, plan.Mode)
	assert.Equal(t, []domain.QueryID{10, 30}, plan.Targets)
	assert.Equal(t, []domain.QueryID{10, 30}, plan.Changed)
	assert.Equal(t, []string{"SYNC MODE: changed-only (2 of 3 query ids from queries.yml)"}, reporter.lines)
}

func TestPlanner_ChangedFilesWithUnparseablePath(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20, 30}

	plan := NewPlanner(reporter, "queries.yml").Plan(tracked, false, "queries/x___20.sql,queries/bad.sql")

	assert.Equal(t, []domain.QueryID{20}, plan.Changed)
	assert.Equal(t, []domain.QueryID{20}, plan.Targets)
	assert.Equal(t, []string{
		`WARNING: could not parse query id from changed file "queries/bad.sql"`,
		"SYNC MODE: changed-only (1 of 3 query ids from queries.yml)",
	}, reporter.lines)
}

func TestPlanner_WarnsAboutUntrackedChangedIDs(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20, 30}

	plan := NewPlanner(reporter, "queries.yml").Plan(tracked, false, "a___99.sql,b___20.sql,c___40.sql")

	assert.Equal(t, []domain.QueryID{40, 99}, plan.Untracked)
	assert.Equal(t, []domain.QueryID{20}, plan.Targets)
	assert.Equal(t, []string{
		"WARNING: changed files include query ids not present in queries.yml: [40, 99]",
		"SYNC MODE: changed-only (1 of 3 query ids from queries.yml)",
	}, reporter.lines)
}

func TestPlanner_NothingToDo(t *testing.T) {
	reporter := &recordingReporter{}

	plan := NewPlanner(reporter, "queries.yml").Plan([]domain.QueryID{10}, false, "a___99.sql")

	assert.True(t, plan.NothingToDo)
	assert.Empty(t, plan.Targets)
	assert.Equal(t, []string{
		"WARNING: changed files include query ids not present in queries.yml: [99]",
		"INFO: changed SQL files do not match any query id in queries.yml. Nothing to update.",
	}, reporter.lines)
}

func TestPlanner_DefaultFullSync(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20, 30}

	plan := NewPlanner(reporter, "queries.yml").Plan(tracked, false, "")

	assert.Equal(t, domain.ModeFull, plan.Mode)
	assert.True(t, plan.Defaulted)
	assert.Equal(t, tracked, plan.Targets)
	assert.Equal(t, []string{"SYNC MODE: full (default)"}, reporter.lines)
}

func TestPlanner_FallbackWhenNoIDsParsed(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20}

	plan := NewPlanner(reporter, "queries.yml").Plan(tracked, false, "README.md")

	assert.True(t, plan.Defaulted)
	assert.Equal(t, tracked, plan.Targets)
	assert.Equal(t, []string{
		`WARNING: could not parse query id from changed file "README.md"`,
		"WARNING: CHANGED_QUERY_FILES was provided but no query ids were parsed; falling back to full sync.",
		"SYNC MODE: full (default)",
	}, reporter.lines)
}

func TestPlanner_DuplicatesInManifestArePreserved(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20, 10}

	full := NewPlanner(reporter, "queries.yml").Plan(tracked, true, "")
	changed := NewPlanner(reporter, "queries.yml").Plan(tracked, false, "a___10.sql")

	assert.Equal(t, []domain.QueryID{10, 20, 10}, full.Targets)
	assert.Equal(t, []domain.QueryID{10, 10}, changed.Targets)
}

func TestPlanner_TargetsDoNotAliasTracked(t *testing.T) {
	reporter := &recordingReporter{}
	tracked := []domain.QueryID{10, 20}

	plan := NewPlanner(reporter, "queries.yml").Plan(tracked, true, "")
	require.Len(t, plan.Targets, 2)
	plan.Targets[0] = 99

	assert.Equal(t, domain.QueryID(10), tracked[0])
}

func TestPlanner_TargetsAreSubsetOfTracked(t *testing.T) {
	tracked := []domain.QueryID{3, 1, 2}
	inputs := []struct {
		full bool
		raw  string
	}{
		{true, ""},
		{false, ""},
		{false, "x___2.sql,y___7.sql"},
		{false, "bad"},
		{true, "x___1.sql"},
	}

	for _, in := range inputs {
		plan := NewPlanner(&recordingReporter{}, "queries.yml").Plan(tracked, in.full, in.raw)
		set := toSet(tracked)
		for _, id := range plan.Targets {
			_, ok := set[id]
			assert.True(t, ok, "target %d not tracked (full=%v raw=%q)", id, in.full, in.raw)
		}
	}
}
