package model

import "sort"

// StatusCategory classifies a status effect's role.
type StatusCategory string

const (
	CategoryDOT     StatusCategory = "dot"
	CategoryHOT     StatusCategory = "hot"
	CategoryBuff    StatusCategory = "buff"
	CategoryDebuff  StatusCategory = "debuff"
	CategoryControl StatusCategory = "control"
)

// StackingMode governs reapplication of an already-active status.
type StackingMode string

const (
	StackNone      StackingMode = "none"      // reapplication ignored
	StackRefresh   StackingMode = "refresh"   // duration and potency refreshed
	StackStack     StackingMode = "stack"     // bounded stack counter
	StackIntensify StackingMode = "intensify" // bounded intensity counter
)

// TickFormula describes a DOT/HOT periodic amount:
// amount = sourcePower×Scale + Base + Rank×PerRank, × max(1, intensity).
type TickFormula struct {
	Element Element `json:"element" yaml:"element"`
	Base    float64 `json:"base" yaml:"base"`
	PerRank float64 `json:"per_rank" yaml:"per_rank"`
	Scale   float64 `json:"scale" yaml:"scale"`
}

// StatusSpec is the definition a skill or item carries: everything needed
// to instantiate an ActiveStatus on a target. Specs are immutable data.
type StatusSpec struct {
	ID       string         `json:"id" yaml:"id"`
	Category StatusCategory `json:"category" yaml:"category"`
	Stacking StackingMode   `json:"stacking" yaml:"stacking"`

	Duration  int `json:"duration" yaml:"duration"`     // turns
	TickEvery int `json:"tick_every" yaml:"tick_every"` // turns between ticks (dot/hot)

	MaxStacks    int `json:"max_stacks" yaml:"max_stacks"`       // 0 = tunable default
	IntensityCap int `json:"intensity_cap" yaml:"intensity_cap"` // 0 = tunable default

	Mods StatMods    `json:"mods" yaml:"mods"`
	Tick TickFormula `json:"tick" yaml:"tick"`

	Dispellable    bool     `json:"dispellable" yaml:"dispellable"`
	CleanseTags    []string `json:"cleanse_tags,omitempty" yaml:"cleanse_tags,omitempty"`
	GrantsImmunity []string `json:"grants_immunity,omitempty" yaml:"grants_immunity,omitempty"`
}

// ActiveStatus is one live status instance on an actor. It snapshots the
// source's relevant stat (SourcePower) at application time — attribution is
// by id, never a live reference.
type ActiveStatus struct {
	StatusID      string         `json:"statusId"`
	SourceActorID string         `json:"sourceActorId"`
	SourceSkillID string         `json:"sourceSkillId"`
	Category      StatusCategory `json:"category"`

	RemainingTurns int `json:"remainingTurns"`
	NextTickTurn   int `json:"nextTickTurn"`
	TickEvery      int `json:"tickEvery"`
	Stacks         int `json:"stacks"`
	Intensity      int `json:"intensity"`
	Rank           int `json:"rank"`

	Mods        StatMods    `json:"mods"`
	Tick        TickFormula `json:"tick"`
	SourcePower float64     `json:"sourcePower"`

	Dispellable    bool     `json:"dispellable"`
	CleanseTags    []string `json:"cleanseTags,omitempty"`
	GrantsImmunity []string `json:"grantsImmunity,omitempty"`
}

// Key identifies the stacking slot: at most one ActiveStatus per key.
type StatusKey struct {
	StatusID      string
	SourceActorID string
	SourceSkillID string
}

// Key returns the stacking-slot key of this instance.
func (s ActiveStatus) Key() StatusKey {
	return StatusKey{s.StatusID, s.SourceActorID, s.SourceSkillID}
}

// SortStatuses orders the list by (status id, source actor, source skill)
// in place. Every status-engine operation returns a list in this order so
// that logically identical states serialize byte-identically.
func SortStatuses(statuses []ActiveStatus) {
	sort.SliceStable(statuses, func(i, j int) bool {
		a, b := statuses[i], statuses[j]
		if a.StatusID != b.StatusID {
			return a.StatusID < b.StatusID
		}
		if a.SourceActorID != b.SourceActorID {
			return a.SourceActorID < b.SourceActorID
		}
		return a.SourceSkillID < b.SourceSkillID
	})
}
