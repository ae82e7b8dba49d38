// Package status is the status-effect state machine: application with
// stacking-mode resolution and immunity checks, periodic DOT/HOT ticking,
// stat-modifier aggregation, and selective cleansing. Every operation takes
// a status list and returns a new one — callers own their slices and the
// engine never mutates shared state.
package status

import (
	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
)

// Reason discriminates what an application did. Callers branch on it;
// nothing here is an error.
type Reason string

const (
	Applied     Reason = "applied"
	IgnoredNone Reason = "ignored_none"
	Refreshed   Reason = "refreshed"
	Stacked     Reason = "stacked"
	Intensified Reason = "intensified"
	Immune      Reason = "immune"
)

// Source attributes an application to its origin. Power is the snapshot of
// the source actor's relevant offensive stat, taken at application time —
// ticks never chase a live reference.
type Source struct {
	ActorID string
	SkillID string
	Power   float64
}

// ApplyResult is the outcome of one application attempt.
type ApplyResult struct {
	Statuses []model.ActiveStatus
	Reason   Reason
}

// Apply resolves one incoming status against the target's current list.
// turn is the current turn number (used to schedule the first tick).
//
// Resolution order: immunity scan, then slot lookup by (status id, source
// actor, source skill), then the spec's stacking mode. The returned list is
// always in stable sort order.
func Apply(statuses []model.ActiveStatus, spec model.StatusSpec, src Source, rank, turn int, tun config.Tunables) ApplyResult {
	out := append([]model.ActiveStatus(nil), statuses...)

	for _, st := range out {
		if grantsImmunity(st, spec) {
			return ApplyResult{Statuses: out, Reason: Immune}
		}
	}

	incoming := instantiate(spec, src, rank, turn)
	key := incoming.Key()

	idx := -1
	for i := range out {
		if out[i].Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		out = append(out, incoming)
		model.SortStatuses(out)
		return ApplyResult{Statuses: out, Reason: Applied}
	}

	existing := &out[idx]
	reason := Applied
	switch spec.Stacking {
	case model.StackNone:
		return ApplyResult{Statuses: out, Reason: IgnoredNone}

	case model.StackRefresh:
		existing.RemainingTurns = maxInt(existing.RemainingTurns, incoming.RemainingTurns)
		existing.Mods = incoming.Mods
		existing.Tick = incoming.Tick
		existing.SourcePower = incoming.SourcePower
		existing.Rank = maxInt(existing.Rank, incoming.Rank)
		reason = Refreshed

	case model.StackStack:
		limit := spec.MaxStacks
		if limit <= 0 {
			limit = tun.Status.DefaultMaxStacks
		}
		if existing.Stacks < limit {
			existing.Stacks++
		}
		existing.RemainingTurns = maxInt(existing.RemainingTurns, incoming.RemainingTurns)
		existing.NextTickTurn = minInt(existing.NextTickTurn, incoming.NextTickTurn)
		reason = Stacked

	case model.StackIntensify:
		cap := spec.IntensityCap
		if cap <= 0 {
			cap = tun.Status.DefaultIntensityCap
		}
		if existing.Intensity < cap {
			existing.Intensity++
		}
		existing.RemainingTurns = maxInt(existing.RemainingTurns, incoming.RemainingTurns)
		reason = Intensified

	default:
		// Unknown mode behaves as refresh; coercion over failure.
		existing.RemainingTurns = maxInt(existing.RemainingTurns, incoming.RemainingTurns)
		reason = Refreshed
	}

	model.SortStatuses(out)
	return ApplyResult{Statuses: out, Reason: reason}
}

// instantiate builds a fresh ActiveStatus from its spec.
func instantiate(spec model.StatusSpec, src Source, rank, turn int) model.ActiveStatus {
	tickEvery := spec.TickEvery
	if tickEvery < 1 {
		tickEvery = 1
	}
	return model.ActiveStatus{
		StatusID:      spec.ID,
		SourceActorID: src.ActorID,
		SourceSkillID: src.SkillID,
		Category:      spec.Category,

		RemainingTurns: spec.Duration,
		NextTickTurn:   turn + tickEvery,
		TickEvery:      tickEvery,
		Stacks:         1,
		Intensity:      1,
		Rank:           rank,

		Mods:        spec.Mods,
		Tick:        spec.Tick,
		SourcePower: src.Power,

		Dispellable:    spec.Dispellable,
		CleanseTags:    append([]string(nil), spec.CleanseTags...),
		GrantsImmunity: append([]string(nil), spec.GrantsImmunity...),
	}
}

// grantsImmunity reports whether an active status blocks the incoming spec:
// exact id match, category match, or the wildcard "all".
func grantsImmunity(st model.ActiveStatus, spec model.StatusSpec) bool {
	for _, g := range st.GrantsImmunity {
		if g == "all" || g == spec.ID || g == string(spec.Category) {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
