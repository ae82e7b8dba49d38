package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veydris/embercore/internal/model"
)

// Overrides mirrors Tunables with pointer fields: nil keeps the default,
// non-nil replaces it. The merge is an explicit walk over this closed
// schema — every field's behavior (replace vs recurse) is visible below.
// Slices (loot tiers) replace wholesale, never element-wise.
type Overrides struct {
	RuleVersion *string `yaml:"rule_version"`

	Stats       *StatOverrides        `yaml:"stats"`
	Mitigation  *MitigationOverrides  `yaml:"mitigation"`
	Combat      *CombatOverrides      `yaml:"combat"`
	Status      *StatusOverrides      `yaml:"status"`
	Loot        *LootOverrides        `yaml:"loot"`
	Progression *ProgressionOverrides `yaml:"progression"`
	Sim         *SimOverrides         `yaml:"sim"`
}

// StatOverrides overlays StatTunables.
type StatOverrides struct {
	HPBase     *float64 `yaml:"hp_base"`
	HPPerVit   *float64 `yaml:"hp_per_vit"`
	HPPerLevel *float64 `yaml:"hp_per_level"`

	MPBase     *float64 `yaml:"mp_base"`
	MPPerWis   *float64 `yaml:"mp_per_wis"`
	MPPerLevel *float64 `yaml:"mp_per_level"`

	AttackBase   *float64 `yaml:"attack_base"`
	AttackPerStr *float64 `yaml:"attack_per_str"`
	MagicBase    *float64 `yaml:"magic_base"`
	MagicPerInt  *float64 `yaml:"magic_per_int"`

	DefensePerVit  *float64 `yaml:"defense_per_vit"`
	MagicDefPerWis *float64 `yaml:"magic_def_per_wis"`

	AccuracyBase   *float64 `yaml:"accuracy_base"`
	AccuracyPerDex *float64 `yaml:"accuracy_per_dex"`
	EvasionBase    *float64 `yaml:"evasion_base"`
	EvasionPerDex  *float64 `yaml:"evasion_per_dex"`

	CritBase   *float64 `yaml:"crit_base"`
	CritPerDex *float64 `yaml:"crit_per_dex"`

	SpeedBase   *float64 `yaml:"speed_base"`
	SpeedPerDex *float64 `yaml:"speed_per_dex"`
}

// MitigationOverrides overlays MitigationTunables.
type MitigationOverrides struct {
	SoftCap       *float64 `yaml:"soft_cap"`
	HardCap       *float64 `yaml:"hard_cap"`
	OverflowSlope *float64 `yaml:"overflow_slope"`

	ResistSoftCap       *float64 `yaml:"resist_soft_cap"`
	ResistHardCap       *float64 `yaml:"resist_hard_cap"`
	ResistOverflowSlope *float64 `yaml:"resist_overflow_slope"`
	ResistMin           *float64 `yaml:"resist_min"`
	ResistMax           *float64 `yaml:"resist_max"`

	DamageScale *float64 `yaml:"damage_scale"`
}

// CombatOverrides overlays CombatTunables.
type CombatOverrides struct {
	HitBase        *float64 `yaml:"hit_base"`
	AccuracyFactor *float64 `yaml:"accuracy_factor"`
	HitChanceMin   *float64 `yaml:"hit_chance_min"`
	HitChanceMax   *float64 `yaml:"hit_chance_max"`

	CritChanceMin  *float64 `yaml:"crit_chance_min"`
	CritChanceMax  *float64 `yaml:"crit_chance_max"`
	CritMultiplier *float64 `yaml:"crit_multiplier"`

	Variance     *float64 `yaml:"variance"`
	MinHitDamage *float64 `yaml:"min_hit_damage"`
}

// StatusOverrides overlays StatusTunables.
type StatusOverrides struct {
	DefaultMaxStacks    *int     `yaml:"default_max_stacks"`
	DefaultIntensityCap *int     `yaml:"default_intensity_cap"`
	HealBonus           *float64 `yaml:"heal_bonus"`
}

// LootOverrides overlays LootTunables. Tiers replace the whole tier list.
type LootOverrides struct {
	Tiers []RarityTier `yaml:"tiers"`

	LevelScalingBase     *float64 `yaml:"level_scaling_base"`
	LevelScalingPerLevel *float64 `yaml:"level_scaling_per_level"`
	BasePrice            *float64 `yaml:"base_price"`
	BindFromTier         *int     `yaml:"bind_from_tier"`
}

// ProgressionOverrides overlays the XP curve.
type ProgressionOverrides struct {
	Base     *float64 `yaml:"base"`
	Exponent *float64 `yaml:"exponent"`
	MaxLevel *int     `yaml:"max_level"`
}

// SimOverrides overlays SimTunables.
type SimOverrides struct {
	TurnCap *int `yaml:"turn_cap"`
}

// LoadOverrides reads an override overlay from a YAML file. A missing file
// is not an error: it returns nil overrides, keeping the defaults.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading tunables overrides %s: %w", path, err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing tunables overrides %s: %w", path, err)
	}
	return &o, nil
}

func (t *Tunables) apply(o *Overrides) {
	if o == nil {
		return
	}
	setStr(&t.RuleVersion, o.RuleVersion)
	t.Stats.apply(o.Stats)
	t.Mitigation.apply(o.Mitigation)
	t.Combat.apply(o.Combat)
	t.Status.apply(o.Status)
	t.Loot.apply(o.Loot)
	applyProgression(&t.Progression, o.Progression)
	t.Sim.apply(o.Sim)
}

func (s *StatTunables) apply(o *StatOverrides) {
	if o == nil {
		return
	}
	set(&s.HPBase, o.HPBase)
	set(&s.HPPerVit, o.HPPerVit)
	set(&s.HPPerLevel, o.HPPerLevel)
	set(&s.MPBase, o.MPBase)
	set(&s.MPPerWis, o.MPPerWis)
	set(&s.MPPerLevel, o.MPPerLevel)
	set(&s.AttackBase, o.AttackBase)
	set(&s.AttackPerStr, o.AttackPerStr)
	set(&s.MagicBase, o.MagicBase)
	set(&s.MagicPerInt, o.MagicPerInt)
	set(&s.DefensePerVit, o.DefensePerVit)
	set(&s.MagicDefPerWis, o.MagicDefPerWis)
	set(&s.AccuracyBase, o.AccuracyBase)
	set(&s.AccuracyPerDex, o.AccuracyPerDex)
	set(&s.EvasionBase, o.EvasionBase)
	set(&s.EvasionPerDex, o.EvasionPerDex)
	set(&s.CritBase, o.CritBase)
	set(&s.CritPerDex, o.CritPerDex)
	set(&s.SpeedBase, o.SpeedBase)
	set(&s.SpeedPerDex, o.SpeedPerDex)
}

func (m *MitigationTunables) apply(o *MitigationOverrides) {
	if o == nil {
		return
	}
	set(&m.SoftCap, o.SoftCap)
	set(&m.HardCap, o.HardCap)
	set(&m.OverflowSlope, o.OverflowSlope)
	set(&m.ResistSoftCap, o.ResistSoftCap)
	set(&m.ResistHardCap, o.ResistHardCap)
	set(&m.ResistOverflowSlope, o.ResistOverflowSlope)
	set(&m.ResistMin, o.ResistMin)
	set(&m.ResistMax, o.ResistMax)
	set(&m.DamageScale, o.DamageScale)
}

func (c *CombatTunables) apply(o *CombatOverrides) {
	if o == nil {
		return
	}
	set(&c.HitBase, o.HitBase)
	set(&c.AccuracyFactor, o.AccuracyFactor)
	set(&c.HitChanceMin, o.HitChanceMin)
	set(&c.HitChanceMax, o.HitChanceMax)
	set(&c.CritChanceMin, o.CritChanceMin)
	set(&c.CritChanceMax, o.CritChanceMax)
	set(&c.CritMultiplier, o.CritMultiplier)
	set(&c.Variance, o.Variance)
	set(&c.MinHitDamage, o.MinHitDamage)
}

func (s *StatusTunables) apply(o *StatusOverrides) {
	if o == nil {
		return
	}
	setInt(&s.DefaultMaxStacks, o.DefaultMaxStacks)
	setInt(&s.DefaultIntensityCap, o.DefaultIntensityCap)
	set(&s.HealBonus, o.HealBonus)
}

func (l *LootTunables) apply(o *LootOverrides) {
	if o == nil {
		return
	}
	if o.Tiers != nil {
		l.Tiers = append([]RarityTier(nil), o.Tiers...)
	}
	set(&l.LevelScalingBase, o.LevelScalingBase)
	set(&l.LevelScalingPerLevel, o.LevelScalingPerLevel)
	set(&l.BasePrice, o.BasePrice)
	setInt(&l.BindFromTier, o.BindFromTier)
}

func applyProgression(c *model.XPCurve, o *ProgressionOverrides) {
	if o == nil {
		return
	}
	set(&c.Base, o.Base)
	set(&c.Exponent, o.Exponent)
	setInt(&c.MaxLevel, o.MaxLevel)
}

func (s *SimTunables) apply(o *SimOverrides) {
	if o == nil {
		return
	}
	setInt(&s.TurnCap, o.TurnCap)
}

func set(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
