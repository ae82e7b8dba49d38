// Package testutil provides shared fixtures for the rules test suites:
// canned actors, skills, and status specs with round, easy-to-reason-about
// numbers.
package testutil

import (
	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
)

// Tunables returns the default ruleset.
func Tunables() config.Tunables {
	return config.Build(nil)
}

// Warrior is a strength build: hits hard physically, tanky, slow.
func Warrior(id string, level int) model.Actor {
	return model.Actor{
		ID:    id,
		Name:  "Warrior " + id,
		Level: level,
		Base: model.BaseStats{
			Strength:     14,
			Dexterity:    9,
			Intelligence: 4,
			Vitality:     13,
			Wisdom:       5,
		},
		Growth: model.BaseStats{
			Strength: 2.0, Dexterity: 1.0, Intelligence: 0.4,
			Vitality: 1.8, Wisdom: 0.5,
		},
		Equipment: map[model.EquipSlot]*model.Item{},
		Resists:   map[model.Element]float64{model.ElementPhysical: 0.1},
	}
}

// Mage mirrors the warrior's total attribute weight on the magic axes.
func Mage(id string, level int) model.Actor {
	return model.Actor{
		ID:    id,
		Name:  "Mage " + id,
		Level: level,
		Base: model.BaseStats{
			Strength:     4,
			Dexterity:    10,
			Intelligence: 14,
			Vitality:     10,
			Wisdom:       7,
		},
		Growth: model.BaseStats{
			Strength: 0.4, Dexterity: 1.1, Intelligence: 2.0,
			Vitality: 1.4, Wisdom: 0.8,
		},
		Equipment: map[model.EquipSlot]*model.Item{},
		Resists:   map[model.Element]float64{model.ElementFire: 0.1},
	}
}

// Strike is a plain physical hit.
func Strike() model.Skill {
	return model.Skill{
		ID:      "strike",
		Name:    "Strike",
		Element: model.ElementPhysical,
		Kind:    model.KindPhysical,
		Target:  model.TargetSingle,
		Rank:    1, MaxRank: 5,
		Cost:       model.ScaledValue{Base: 0},
		Power:      model.ScaledValue{Base: 10, PerRank: 4, PerLevel: 0.8},
		PowerScale: 1.0,
	}
}

// Firebolt is a magical hit that leaves a burn DOT.
func Firebolt() model.Skill {
	burn := BurnSpec()
	return model.Skill{
		ID:      "firebolt",
		Name:    "Firebolt",
		Element: model.ElementFire,
		Kind:    model.KindMagical,
		Target:  model.TargetSingle,
		Rank:    1, MaxRank: 5,
		Cost:       model.ScaledValue{Base: 6, PerRank: 2, PerLevel: 0.2},
		Power:      model.ScaledValue{Base: 12, PerRank: 5, PerLevel: 0.9},
		PowerScale: 1.0,
		CritBonus:  0.05,
		Applies:    &burn,
	}
}

// Mend is a self-heal.
func Mend() model.Skill {
	return model.Skill{
		ID:      "mend",
		Name:    "Mend",
		Element: model.ElementShadow,
		Kind:    model.KindHeal,
		Target:  model.TargetSelf,
		Rank:    1, MaxRank: 5,
		Cost:       model.ScaledValue{Base: 8, PerRank: 2},
		Power:      model.ScaledValue{Base: 15, PerRank: 6, PerLevel: 0.5},
		PowerScale: 0.6,
	}
}

// BurnSpec is a low-rank fire DOT with stack stacking.
func BurnSpec() model.StatusSpec {
	return model.StatusSpec{
		ID:       "burn",
		Category: model.CategoryDOT,
		Stacking: model.StackStack,
		Duration: 3, TickEvery: 1,
		MaxStacks:   3,
		Tick:        model.TickFormula{Element: model.ElementFire, Base: 3, PerRank: 1, Scale: 0.08},
		Dispellable: true,
		CleanseTags: []string{"fire", "dot"},
	}
}

// RegenSpec is a HOT with refresh stacking.
func RegenSpec() model.StatusSpec {
	return model.StatusSpec{
		ID:       "regen",
		Category: model.CategoryHOT,
		Stacking: model.StackRefresh,
		Duration: 4, TickEvery: 1,
		Tick:        model.TickFormula{Element: model.ElementShadow, Base: 4, PerRank: 2, Scale: 0.05},
		Dispellable: true,
		CleanseTags: []string{"heal"},
	}
}

// WeakenSpec is an intensifying attack-down debuff.
func WeakenSpec() model.StatusSpec {
	return model.StatusSpec{
		ID:       "weaken",
		Category: model.CategoryDebuff,
		Stacking: model.StackIntensify,
		Duration: 5, IntensityCap: 3,
		Mods: model.StatMods{
			Percent: map[model.Stat]float64{model.StatAttack: -0.10},
		},
		Dispellable: true,
		CleanseTags: []string{"curse"},
	}
}

// StunSpec is an undispellable control status that blocks further control.
func StunSpec() model.StatusSpec {
	return model.StatusSpec{
		ID:       "stun",
		Category: model.CategoryControl,
		Stacking: model.StackNone,
		Duration: 1,
		GrantsImmunity: []string{"control"},
	}
}
