package services

import (
	"sort"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
)

// Planner selects the queries a run pushes.
type Planner struct {
	reporter     driven.Reporter
	manifestName string
}

// NewPlanner creates a planner reporting to reporter. manifestName is the
// manifest's file name, used in messages.
func NewPlanner(reporter driven.Reporter, manifestName string) *Planner {
	return &Planner{reporter: reporter, manifestName: manifestName}
}

// Plan decides the target set from the tracked IDs, the full-sync flag and
// the raw comma-separated changed-file list. Exactly one of three branches
// is taken and reported: explicit full sync, changed-only, or default full
// sync. Targets are always a subset of tracked, in tracked order.
func (p *Planner) Plan(tracked []domain.QueryID, fullSync bool, changedRaw string) domain.Plan {
	changed, rejected := domain.ParseChangedQueryIDs(changedRaw)
	for _, path := range rejected {
		p.reporter.Warning("could not parse query id from changed file %q", path)
	}

	plan := domain.Plan{
		Tracked: len(tracked),
		Changed: changed,
	}

	switch {
	case fullSync:
		plan.Mode = domain.ModeFull
		plan.Targets = append([]domain.QueryID(nil), tracked...)
		p.reporter.SyncMode("full (FULL_SYNC=true)")

	case len(changed) > 0:
		plan.Mode = domain.ModeChangedOnly
		plan.Untracked = untracked(changed, tracked)
		if len(plan.Untracked) > 0 {
			p.reporter.Warning("changed files include query ids not present in %s: %s",
				p.manifestName, domain.FormatQueryIDs(plan.Untracked))
		}

		plan.Targets = filterTracked(tracked, changed)
		if len(plan.Targets) == 0 {
			plan.NothingToDo = true
			p.reporter.Info("changed SQL files do not match any query id in %s. Nothing to update.", p.manifestName)
			return plan
		}
		p.reporter.SyncMode("changed-only (%d of %d query ids from %s)",
			len(plan.Targets), len(tracked), p.manifestName)

	default:
		if changedRaw != "" {
			p.reporter.Warning("CHANGED_QUERY_FILES was provided but no query ids were parsed; falling back to full sync.")
		}
		plan.Mode = domain.ModeFull
		plan.Defaulted = true
		plan.Targets = append([]domain.QueryID(nil), tracked...)
		p.reporter.SyncMode("full (default)")
	}

	return plan
}

// filterTracked keeps the tracked IDs present in changed, preserving
// tracked order and duplicates.
func filterTracked(tracked, changed []domain.QueryID) []domain.QueryID {
	set := toSet(changed)
	targets := make([]domain.QueryID, 0, len(changed))
	for _, id := range tracked {
		if _, ok := set[id]; ok {
			targets = append(targets, id)
		}
	}
	return targets
}

// untracked returns the changed IDs that are not tracked, sorted.
func untracked(changed, tracked []domain.QueryID) []domain.QueryID {
	set := toSet(tracked)
	var out []domain.QueryID
	for _, id := range changed {
		if _, ok := set[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toSet(ids []domain.QueryID) map[domain.QueryID]struct{} {
	set := make(map[domain.QueryID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
