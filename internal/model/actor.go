package model

import "math"

// EquipSlot names an equipment slot on an actor.
type EquipSlot string

const (
	SlotWeapon EquipSlot = "weapon"
	SlotHead   EquipSlot = "head"
	SlotChest  EquipSlot = "chest"
	SlotLegs   EquipSlot = "legs"
	SlotFeet   EquipSlot = "feet"
	SlotHands  EquipSlot = "hands"
	SlotRing   EquipSlot = "ring"
	SlotAmulet EquipSlot = "amulet"
)

// AllSlots lists every equipment slot in declaration order.
var AllSlots = []EquipSlot{
	SlotWeapon, SlotHead, SlotChest, SlotLegs,
	SlotFeet, SlotHands, SlotRing, SlotAmulet,
}

// Actor is a combat participant. It is plain data: the rules packages take
// an Actor in and hand a new Actor back, so callers can diff and persist
// deltas. Derived is a cache — always the Stat Deriver's output for the
// current base stats, equipment, and statuses, never hand-edited.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	XP    int64  `json:"xp"`

	Base    BaseStats    `json:"base"`
	Growth  BaseStats    `json:"growth"`
	Derived DerivedStats `json:"derived"`

	Equipment map[EquipSlot]*Item `json:"equipment,omitempty"`
	Resists   map[Element]float64 `json:"resists,omitempty"`
	Statuses  []ActiveStatus      `json:"statuses,omitempty"`
	Skills    []Skill             `json:"skills,omitempty"`

	HP      float64 `json:"hp"`
	MP      float64 `json:"mp"`
	Barrier float64 `json:"barrier"`
	Coins   int64   `json:"coins"`
}

// EquipmentMods aggregates flat stat modifiers from every equipped item.
func (a Actor) EquipmentMods() StatMods {
	mods := StatMods{Flat: map[Stat]float64{}, Percent: map[Stat]float64{}}
	for _, slot := range AllSlots {
		item := a.Equipment[slot]
		if item == nil {
			continue
		}
		for stat, v := range item.Mods {
			mods.Flat[stat] += v
		}
		for _, affix := range item.Affixes {
			mods.Flat[affix.Stat] += affix.Value
		}
	}
	return mods
}

// Clone returns a deep copy of the actor. Rules functions mutate the copy
// and return it; the input actor is never touched.
func (a Actor) Clone() Actor {
	out := a
	out.Equipment = make(map[EquipSlot]*Item, len(a.Equipment))
	for k, v := range a.Equipment {
		out.Equipment[k] = v // items are immutable, share the pointer
	}
	out.Resists = make(map[Element]float64, len(a.Resists))
	for k, v := range a.Resists {
		out.Resists[k] = v
	}
	out.Statuses = append([]ActiveStatus(nil), a.Statuses...)
	out.Skills = append([]Skill(nil), a.Skills...)
	return out
}

// XPCurve describes cumulative experience required per level:
// expForLevel(n) = Base × (n-1)^Exponent.
type XPCurve struct {
	Base     float64 `yaml:"base"`
	Exponent float64 `yaml:"exponent"`
	MaxLevel int     `yaml:"max_level"`
}

// ExpForLevel returns cumulative XP required to reach level. Levels at or
// below 1 need 0; levels past MaxLevel cost the same as MaxLevel (cap).
func (c XPCurve) ExpForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if c.MaxLevel > 0 && level > c.MaxLevel {
		level = c.MaxLevel
	}
	return int64(c.Base * math.Pow(float64(level-1), c.Exponent))
}

// LevelForExp returns the highest level whose cumulative requirement is
// covered by exp, starting the scan from startLevel.
func (c XPCurve) LevelForExp(exp int64, startLevel int) int {
	if startLevel < 1 {
		startLevel = 1
	}
	level := startLevel
	for c.MaxLevel == 0 || level < c.MaxLevel {
		next := c.ExpForLevel(level + 1)
		// A curve whose requirement stops growing (zero or flat Base with
		// no max level) can never gate another level; stop scanning.
		if exp < next || next <= c.ExpForLevel(level) {
			break
		}
		level++
	}
	return level
}

// AddExperience grants xp to a copy of the actor, applying every level-up
// the new total covers: each level adds the growth vector to base stats.
// The caller must recompute derived stats afterwards.
func AddExperience(a Actor, xp int64, curve XPCurve) Actor {
	out := a.Clone()
	if xp <= 0 {
		return out
	}
	out.XP += xp
	newLevel := curve.LevelForExp(out.XP, out.Level)
	if gained := newLevel - out.Level; gained > 0 {
		out.Base = out.Base.Add(out.Growth, gained)
		out.Level = newLevel
	}
	return out
}
