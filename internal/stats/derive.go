package stats

import (
	"math"

	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
	"github.com/veydris/embercore/internal/status"
)

// DiminishingReturns squeezes a mitigation stat past its soft cap: below
// soft the value passes through, between soft and hard the excess is scaled
// by slope, above hard further points add nothing.
func DiminishingReturns(value, soft, hard, slope float64) float64 {
	if value <= soft {
		return value
	}
	if value >= hard {
		return soft + (hard-soft)*slope
	}
	return soft + (value-soft)*slope
}

// Derive is the Stat Deriver: base attributes + equipment modifiers +
// status modifiers -> derived stats. Pure and total — missing inputs act
// as zero, outputs are rounded down to policy (non-negative, capped
// percentages) and it never errors.
//
// Modifier order is fixed: flat additions first, then percentage
// multipliers, regardless of which source contributed them.
func Derive(base model.BaseStats, level int, equip, statusMods model.StatMods, resists map[model.Element]float64, tun config.Tunables) model.DerivedStats {
	s := tun.Stats
	m := tun.Mitigation
	mods := equip.Merge(statusMods, 1)

	apply := func(raw float64, stat model.Stat) float64 {
		return (raw + mods.Flat[stat]) * (1 + mods.Percent[stat])
	}

	lvl := float64(level)
	d := model.DerivedStats{
		MaxHP:        apply(s.HPBase+base.Vitality*s.HPPerVit+lvl*s.HPPerLevel, model.StatMaxHP),
		MaxMP:        apply(s.MPBase+base.Wisdom*s.MPPerWis+lvl*s.MPPerLevel, model.StatMaxMP),
		Attack:       apply(s.AttackBase+base.Strength*s.AttackPerStr, model.StatAttack),
		MagicAttack:  apply(s.MagicBase+base.Intelligence*s.MagicPerInt, model.StatMagicAttack),
		Defense:      apply(base.Vitality*s.DefensePerVit, model.StatDefense),
		MagicDefense: apply(base.Wisdom*s.MagicDefPerWis, model.StatMagicDefense),
		Accuracy:     apply(s.AccuracyBase+base.Dexterity*s.AccuracyPerDex, model.StatAccuracy),
		Evasion:      apply(s.EvasionBase+base.Dexterity*s.EvasionPerDex, model.StatEvasion),
		CritChance:   apply(s.CritBase+base.Dexterity*s.CritPerDex, model.StatCritChance),
		Speed:        apply(s.SpeedBase+base.Dexterity*s.SpeedPerDex, model.StatSpeed),
	}

	// Mitigation stats pass through the shared diminishing-returns curve.
	d.Defense = DiminishingReturns(d.Defense, m.SoftCap, m.HardCap, m.OverflowSlope)
	d.MagicDefense = DiminishingReturns(d.MagicDefense, m.SoftCap, m.HardCap, m.OverflowSlope)

	d.MaxHP = math.Max(1, math.Floor(d.MaxHP))
	d.MaxMP = math.Max(0, math.Floor(d.MaxMP))
	d.Attack = math.Max(0, d.Attack)
	d.MagicAttack = math.Max(0, d.MagicAttack)
	d.Defense = math.Max(0, d.Defense)
	d.MagicDefense = math.Max(0, d.MagicDefense)
	d.Accuracy = math.Max(0, d.Accuracy)
	d.Evasion = math.Max(0, d.Evasion)
	d.Speed = math.Max(0, d.Speed)
	d.CritChance = clamp(d.CritChance, 0, tun.Combat.CritChanceMax)

	d.Resists = make(map[model.Element]float64, len(resists))
	for el, v := range resists {
		curved := DiminishingReturns(v, m.ResistSoftCap, m.ResistHardCap, m.ResistOverflowSlope)
		d.Resists[el] = clamp(curved, m.ResistMin, m.ResistMax)
	}

	return d
}

// Recompute refreshes an actor's cached derived snapshot from its current
// base stats, equipment, and statuses. This is the only way the snapshot
// changes; callers must invoke it after any of those three inputs move.
func Recompute(a model.Actor, tun config.Tunables) model.Actor {
	out := a.Clone()
	flat, pct := status.Mods(out.Statuses)
	out.Derived = Derive(out.Base, out.Level, out.EquipmentMods(),
		model.StatMods{Flat: flat, Percent: pct}, out.Resists, tun)
	if out.HP > out.Derived.MaxHP {
		out.HP = out.Derived.MaxHP
	}
	if out.MP > out.Derived.MaxMP {
		out.MP = out.Derived.MaxMP
	}
	return out
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
