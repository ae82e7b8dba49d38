package model

// TargetMode declares who a skill may be aimed at. Closed set: the combat
// resolver switches exhaustively over it.
type TargetMode string

const (
	TargetSelf   TargetMode = "self"
	TargetSingle TargetMode = "single"
	TargetTile   TargetMode = "tile"
	TargetArea   TargetMode = "area"
)

// SkillKind separates damage channels and healing.
type SkillKind string

const (
	KindPhysical SkillKind = "physical"
	KindMagical  SkillKind = "magical"
	KindHeal     SkillKind = "heal"
)

// ScaledValue is a number with per-rank and per-level growth:
// value(rank, level) = Base + PerRank×(rank-1) + PerLevel×level.
type ScaledValue struct {
	Base     float64 `yaml:"base"`
	PerRank  float64 `yaml:"per_rank"`
	PerLevel float64 `yaml:"per_level"`
}

// At resolves the value for a rank and caster level.
func (s ScaledValue) At(rank, level int) float64 {
	if rank < 1 {
		rank = 1
	}
	return s.Base + s.PerRank*float64(rank-1) + s.PerLevel*float64(level)
}

// Skill is pure data; the combat resolver interprets it. PowerScale
// multiplies the caster's offensive stat, Power is flat added on top.
type Skill struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Element Element    `json:"element"`
	Kind    SkillKind  `json:"kind"`
	Target  TargetMode `json:"target"`

	Rank    int `json:"rank"`
	MaxRank int `json:"maxRank"`

	Cost       ScaledValue `json:"cost"`
	Power      ScaledValue `json:"power"`
	PowerScale float64     `json:"powerScale"`

	HitBonus  float64 `json:"hitBonus"`
	CritBonus float64 `json:"critBonus"`

	// Applies, when set, is the status this skill puts on its target on a
	// successful hit (the DOT behind a poison blade, the HOT behind a
	// regeneration chant).
	Applies *StatusSpec `json:"applies,omitempty"`
}

// PowerAt resolves flat skill power for the skill's current rank.
func (s Skill) PowerAt(level int) float64 {
	return s.Power.At(s.Rank, level)
}

// CostAt resolves the resource cost for the skill's current rank.
func (s Skill) CostAt(level int) float64 {
	return s.Cost.At(s.Rank, level)
}
