// Package sim drives seeded fights between two builds for offline balance
// validation. A fight is fully deterministic in (seed, builds, tunables):
// the event log it returns replays bit-for-bit.
package sim

import (
	"math"

	"github.com/veydris/embercore/internal/combat"
	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
	"github.com/veydris/embercore/internal/rng"
	"github.com/veydris/embercore/internal/stats"
	"github.com/veydris/embercore/internal/status"
)

// Build pairs an actor snapshot with the one skill it uses every turn.
// Transient: exists only for the simulator.
type Build struct {
	Actor model.Actor
	Skill model.Skill
}

// Options bound a fight. A zero TurnCap falls back to the tunable cap.
type Options struct {
	TurnCap int
}

// EventType tags entries in the fight event log.
type EventType string

const (
	EventTick   EventType = "status_tick"
	EventSkill  EventType = "skill"
	EventStatus EventType = "status_applied"
	EventDefeat EventType = "defeat"
	EventCap    EventType = "turn_cap"
)

// Event is one entry of the fight log. Scalar fields only, so two
// logically identical fights serialize byte-identically.
type Event struct {
	Turn    int       `json:"turn"`
	Type    EventType `json:"type"`
	ActorID string    `json:"actorId"`

	TargetID string `json:"targetId,omitempty"`
	SkillID  string `json:"skillId,omitempty"`

	Outcome *combat.Outcome   `json:"outcome,omitempty"`
	Tick    *status.TickEvent `json:"tick,omitempty"`
	Reason  status.Reason     `json:"reason,omitempty"`

	TargetHP float64 `json:"targetHp"`
}

// Result is a finished fight: rounds elapsed, winner id ("" on a capped
// draw), and the full event log.
type Result struct {
	Turns  int     `json:"turns"`
	Winner string  `json:"winner"`
	Events []Event `json:"events"`
}

type fighter struct {
	actor model.Actor
	skill model.Skill
}

// Fight runs the turn loop until one side is defeated or the turn cap is
// reached. Per active turn: tick the actor's own statuses, recompute
// derived stats, resolve one skill use against the opponent, log, check
// defeat. The cap guarantees bounded execution; exhausting it is a draw,
// not an error.
func Fight(seed int64, a, b Build, opts Options, tun config.Tunables) Result {
	turnCap := opts.TurnCap
	if turnCap <= 0 {
		turnCap = tun.Sim.TurnCap
	}

	seq := rng.New(seed)
	fighters := map[string]*fighter{
		a.Actor.ID: {actor: prepare(a.Actor, tun), skill: a.Skill},
		b.Actor.ID: {actor: prepare(b.Actor, tun), skill: b.Skill},
	}
	idA, idB := a.Actor.ID, b.Actor.ID

	var result Result
	for turn := 1; turn <= turnCap; turn++ {
		result.Turns = turn
		for _, id := range actingOrder(fighters[idA], fighters[idB]) {
			self := fighters[id]
			oppID := idA
			if id == idA {
				oppID = idB
			}
			opp := fighters[oppID]

			if winner := takeTurn(turn, self, opp, seq, tun, &result); winner != "" {
				result.Winner = winner
				result.Events = append(result.Events, Event{
					Turn: turn, Type: EventDefeat, ActorID: winner,
				})
				return result
			}
		}
	}

	result.Events = append(result.Events, Event{Turn: result.Turns, Type: EventCap})
	return result
}

// takeTurn runs one actor's turn and returns the winner's id when the turn
// decided the fight.
func takeTurn(turn int, self, opp *fighter, seq *rng.Sequence, tun config.Tunables, result *Result) string {
	// Tick own statuses first, then recompute with the survivors.
	statuses, ticks := status.Tick(self.actor.Statuses, turn, self.actor.Derived.Resists, tun)
	self.actor.Statuses = statuses
	self.actor = stats.Recompute(self.actor, tun)
	for i := range ticks {
		tick := ticks[i]
		switch tick.Kind {
		case status.TickDamage:
			self.actor.HP -= float64(tick.Amount)
		case status.TickHeal:
			self.actor.HP = math.Min(self.actor.HP+float64(tick.Amount), self.actor.Derived.MaxHP)
		}
		result.Events = append(result.Events, Event{
			Turn: turn, Type: EventTick, ActorID: self.actor.ID,
			Tick: &tick, TargetHP: self.actor.HP,
		})
	}
	if self.actor.HP <= 0 {
		return opp.actor.ID
	}

	// One skill use. Heals target self; everything else targets the opponent.
	skill := self.skill
	target := opp
	if skill.Kind == model.KindHeal || skill.Target == model.TargetSelf {
		target = self
	}

	self.actor.MP = math.Max(0, self.actor.MP-skill.CostAt(self.actor.Level))

	outcome := combat.Resolve(combat.Input{
		Attacker:      self.actor.Derived,
		Target:        target.actor.Derived,
		Skill:         skill,
		AttackerLevel: self.actor.Level,
	}, seq, tun)

	if outcome.Damage > 0 {
		target.actor.HP -= float64(outcome.Damage)
	}
	if outcome.Heal > 0 {
		target.actor.HP = math.Min(target.actor.HP+float64(outcome.Heal), target.actor.Derived.MaxHP)
	}
	result.Events = append(result.Events, Event{
		Turn: turn, Type: EventSkill, ActorID: self.actor.ID,
		TargetID: target.actor.ID, SkillID: skill.ID,
		Outcome: &outcome, TargetHP: target.actor.HP,
	})

	if outcome.Hit && skill.Applies != nil {
		offense := self.actor.Derived.Attack
		if skill.Kind == model.KindMagical || skill.Kind == model.KindHeal {
			offense = self.actor.Derived.MagicAttack
		}
		applied := status.Apply(target.actor.Statuses, *skill.Applies, status.Source{
			ActorID: self.actor.ID,
			SkillID: skill.ID,
			Power:   offense,
		}, skill.Rank, turn, tun)
		target.actor.Statuses = applied.Statuses
		target.actor = stats.Recompute(target.actor, tun)
		result.Events = append(result.Events, Event{
			Turn: turn, Type: EventStatus, ActorID: self.actor.ID,
			TargetID: target.actor.ID, SkillID: skill.ID,
			Reason: applied.Reason, TargetHP: target.actor.HP,
		})
	}

	if opp.actor.HP <= 0 {
		return self.actor.ID
	}
	if self.actor.HP <= 0 {
		return opp.actor.ID
	}
	return ""
}

// actingOrder sorts the two fighters by current speed, faster first, with
// actor id as the stable tie-break.
func actingOrder(a, b *fighter) [2]string {
	if a.actor.Derived.Speed > b.actor.Derived.Speed {
		return [2]string{a.actor.ID, b.actor.ID}
	}
	if b.actor.Derived.Speed > a.actor.Derived.Speed {
		return [2]string{b.actor.ID, a.actor.ID}
	}
	if a.actor.ID < b.actor.ID {
		return [2]string{a.actor.ID, b.actor.ID}
	}
	return [2]string{b.actor.ID, a.actor.ID}
}

// prepare recomputes a build's actor and tops off its resources.
func prepare(a model.Actor, tun config.Tunables) model.Actor {
	out := stats.Recompute(a, tun)
	out.HP = out.Derived.MaxHP
	out.MP = out.Derived.MaxMP
	return out
}
