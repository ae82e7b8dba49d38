// Package combat resolves individual skill uses: hit chance, the stochastic
// hit/crit/variance roll sequence, and final damage or healing. All
// functions are pure; randomness comes only from the caller's rng.Sequence,
// and the draw order per resolution is fixed: hit, then crit, then
// variance.
package combat

import (
	"math"

	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
	"github.com/veydris/embercore/internal/rng"
)

// Input is everything one skill use needs. Stats are derived snapshots;
// the resolver never reaches back into an Actor.
type Input struct {
	Attacker      model.DerivedStats
	Target        model.DerivedStats
	Skill         model.Skill
	AttackerLevel int
}

// Outcome reports one resolved skill use.
type Outcome struct {
	Hit    bool `json:"hit"`
	Crit   bool `json:"crit"`
	Damage int  `json:"damage"`
	Heal   int  `json:"heal"`

	HitChance  float64 `json:"hitChance"`
	CritChance float64 `json:"critChance"`
}

// HitChance computes the clamped chance for an attack to land. The clamp
// range is a hard policy invariant: no build is ever unhittable or
// guaranteed to hit.
func HitChance(attackerAcc, targetEva, skillHitBonus float64, tun config.Tunables) float64 {
	c := tun.Combat
	chance := c.HitBase + c.AccuracyFactor*(attackerAcc-targetEva) + skillHitBonus
	return clamp(chance, c.HitChanceMin, c.HitChanceMax)
}

// CritChance computes the clamped chance for a landed attack to crit.
func CritChance(attackerCrit, skillCritBonus float64, tun config.Tunables) float64 {
	c := tun.Combat
	return clamp(attackerCrit+skillCritBonus, c.CritChanceMin, c.CritChanceMax)
}

// Resolve performs the full stochastic resolution of one skill use.
// Damage skills draw hit, then crit, then variance; heals skip the hit
// roll (they cannot miss) but keep crit and variance, preserving a stable
// draw sequence per skill kind.
func Resolve(in Input, seq *rng.Sequence, tun config.Tunables) Outcome {
	c := tun.Combat

	out := Outcome{
		HitChance:  HitChance(in.Attacker.Accuracy, in.Target.Evasion, in.Skill.HitBonus, tun),
		CritChance: CritChance(in.Attacker.CritChance, in.Skill.CritBonus, tun),
	}

	if in.Skill.Kind != model.KindHeal {
		if seq.Next("hit") >= out.HitChance {
			return out // miss: no further draws
		}
	}
	out.Hit = true

	out.Crit = seq.Next("crit") < out.CritChance

	amount := pipelineAmount(in, tun)
	if out.Crit {
		amount *= c.CritMultiplier
	}
	amount *= seq.NextRange("variance", 1-c.Variance, 1+c.Variance)
	amount = math.Floor(amount)

	if in.Skill.Kind == model.KindHeal {
		out.Heal = int(math.Max(0, amount))
		return out
	}

	// Never zero damage on a successful hit.
	out.Damage = int(math.Max(c.MinHitDamage, amount))
	return out
}

// ExpectedDamage is the variance-free preview: the same pipeline with no
// hit, crit, or variance draws. The balance suite and any "expected damage"
// display use this so the two can never drift from Resolve.
func ExpectedDamage(in Input, tun config.Tunables) float64 {
	amount := math.Floor(pipelineAmount(in, tun))
	if in.Skill.Kind == model.KindHeal {
		return math.Max(0, amount)
	}
	return math.Max(tun.Combat.MinHitDamage, amount)
}

// pipelineAmount is the shared deterministic part of the damage/heal
// formula: offense × power scale + flat power, then (for damage) the
// scale/(scale+defense) reduction against the already-curve-mitigated
// defense, then elemental resistance.
func pipelineAmount(in Input, tun config.Tunables) float64 {
	power := in.Skill.PowerAt(in.AttackerLevel)

	switch in.Skill.Kind {
	case model.KindHeal:
		return in.Attacker.MagicAttack*in.Skill.PowerScale + power

	case model.KindMagical:
		base := in.Attacker.MagicAttack*in.Skill.PowerScale + power
		base *= reduction(in.Target.MagicDefense, tun)
		return base * (1 - in.Target.Resist(in.Skill.Element))

	default: // physical
		base := in.Attacker.Attack*in.Skill.PowerScale + power
		base *= reduction(in.Target.Defense, tun)
		return base * (1 - in.Target.Resist(in.Skill.Element))
	}
}

// reduction maps defense into a multiplicative damage factor k/(k+def).
func reduction(defense float64, tun config.Tunables) float64 {
	k := tun.Mitigation.DamageScale
	if k <= 0 {
		return 1
	}
	if defense < 0 {
		defense = 0
	}
	return k / (k + defense)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
