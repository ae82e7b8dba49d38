package status

import (
	"math"

	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
)

// TickKind says what a tick event did to the owner.
type TickKind string

const (
	TickDamage TickKind = "damage"
	TickHeal   TickKind = "heal"
	TickNone   TickKind = "none"
)

// TickEvent is one periodic effect firing (or a status expiring).
type TickEvent struct {
	StatusID       string               `json:"statusId"`
	Category       model.StatusCategory `json:"category"`
	Amount         int                  `json:"amount"`
	Kind           TickKind             `json:"kind"`
	Element        model.Element        `json:"element"`
	RemainingTurns int                  `json:"remainingTurns"`
	Expired        bool                 `json:"expired"`
}

// Tick advances every status one turn. DOT/HOT statuses whose next-tick
// turn has arrived fire: amount = (sourcePower×scale + base + rank×perRank)
// × max(1, intensity), resist-mitigated for damage, heal-bonus boosted for
// healing. Remaining turns decrement every invocation whether or not a tick
// fired; statuses that reach zero are dropped and an expiry event (amount 0
// on non-tick turns) is emitted so callers can react to the removal.
//
// targetResists is the owner's derived (already curved and clamped) resist
// map, applied to DOT damage.
func Tick(statuses []model.ActiveStatus, turn int, targetResists map[model.Element]float64, tun config.Tunables) ([]model.ActiveStatus, []TickEvent) {
	out := make([]model.ActiveStatus, 0, len(statuses))
	var events []TickEvent

	for _, st := range statuses {
		ticked := false

		if (st.Category == model.CategoryDOT || st.Category == model.CategoryHOT) && turn >= st.NextTickTurn {
			amount := tickAmount(st, targetResists, tun)
			kind := TickDamage
			if st.Category == model.CategoryHOT {
				kind = TickHeal
			}
			st.NextTickTurn += st.TickEvery
			st.RemainingTurns--
			ticked = true

			events = append(events, TickEvent{
				StatusID:       st.StatusID,
				Category:       st.Category,
				Amount:         amount,
				Kind:           kind,
				Element:        st.Tick.Element,
				RemainingTurns: st.RemainingTurns,
				Expired:        st.RemainingTurns <= 0,
			})
		} else {
			st.RemainingTurns--
		}

		if st.RemainingTurns <= 0 {
			if !ticked {
				events = append(events, TickEvent{
					StatusID:       st.StatusID,
					Category:       st.Category,
					Amount:         0,
					Kind:           TickNone,
					Element:        st.Tick.Element,
					RemainingTurns: 0,
					Expired:        true,
				})
			}
			continue // terminal: dropped from the returned list
		}

		out = append(out, st)
	}

	model.SortStatuses(out)
	return out, events
}

// tickAmount computes one tick's magnitude for a DOT or HOT.
func tickAmount(st model.ActiveStatus, targetResists map[model.Element]float64, tun config.Tunables) int {
	amount := st.SourcePower*st.Tick.Scale + st.Tick.Base + float64(st.Rank)*st.Tick.PerRank
	amount *= float64(maxInt(1, st.Intensity))

	switch st.Category {
	case model.CategoryDOT:
		amount *= 1 - targetResists[st.Tick.Element]
	case model.CategoryHOT:
		amount *= tun.Status.HealBonus
	}

	if amount < 0 {
		amount = 0
	}
	return int(math.Floor(amount))
}

// Mods aggregates every active status's stat-modifier payload, each scaled
// by max(1, intensity), into one flat map and one percent map for the Stat
// Deriver.
func Mods(statuses []model.ActiveStatus) (flat, percent map[model.Stat]float64) {
	flat = make(map[model.Stat]float64)
	percent = make(map[model.Stat]float64)
	for _, st := range statuses {
		scale := float64(maxInt(1, st.Intensity))
		for stat, v := range st.Mods.Flat {
			flat[stat] += v * scale
		}
		for stat, v := range st.Mods.Percent {
			percent[stat] += v * scale
		}
	}
	return flat, percent
}
