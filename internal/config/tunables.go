package config

import (
	"fmt"

	"github.com/veydris/embercore/internal/model"
)

// RuleVersion tags every Tunables value so persisted actors and items can be
// checked against the rules that produced them.
const RuleVersion = "embercore-rules/1"

// Tunables is the single immutable bag of numeric constants every rules
// function takes explicitly. Constructed once per simulation or request;
// nothing reads configuration implicitly.
type Tunables struct {
	RuleVersion string `yaml:"rule_version"`

	Stats       StatTunables       `yaml:"stats"`
	Mitigation  MitigationTunables `yaml:"mitigation"`
	Combat      CombatTunables     `yaml:"combat"`
	Status      StatusTunables     `yaml:"status"`
	Loot        LootTunables       `yaml:"loot"`
	Progression model.XPCurve      `yaml:"progression"`
	Sim         SimTunables        `yaml:"sim"`
}

// StatTunables are the Stat Deriver coefficients.
type StatTunables struct {
	HPBase     float64 `yaml:"hp_base"`
	HPPerVit   float64 `yaml:"hp_per_vit"`
	HPPerLevel float64 `yaml:"hp_per_level"`

	MPBase     float64 `yaml:"mp_base"`
	MPPerWis   float64 `yaml:"mp_per_wis"`
	MPPerLevel float64 `yaml:"mp_per_level"`

	AttackBase   float64 `yaml:"attack_base"`
	AttackPerStr float64 `yaml:"attack_per_str"`
	MagicBase    float64 `yaml:"magic_base"`
	MagicPerInt  float64 `yaml:"magic_per_int"`

	DefensePerVit  float64 `yaml:"defense_per_vit"`
	MagicDefPerWis float64 `yaml:"magic_def_per_wis"`

	AccuracyBase   float64 `yaml:"accuracy_base"`
	AccuracyPerDex float64 `yaml:"accuracy_per_dex"`
	EvasionBase    float64 `yaml:"evasion_base"`
	EvasionPerDex  float64 `yaml:"evasion_per_dex"`

	CritBase   float64 `yaml:"crit_base"`
	CritPerDex float64 `yaml:"crit_per_dex"`

	SpeedBase   float64 `yaml:"speed_base"`
	SpeedPerDex float64 `yaml:"speed_per_dex"`
}

// MitigationTunables shape the shared diminishing-returns curve and the
// damage-reduction scale.
type MitigationTunables struct {
	SoftCap       float64 `yaml:"soft_cap"`
	HardCap       float64 `yaml:"hard_cap"`
	OverflowSlope float64 `yaml:"overflow_slope"`

	ResistSoftCap       float64 `yaml:"resist_soft_cap"`
	ResistHardCap       float64 `yaml:"resist_hard_cap"`
	ResistOverflowSlope float64 `yaml:"resist_overflow_slope"`
	ResistMin           float64 `yaml:"resist_min"`
	ResistMax           float64 `yaml:"resist_max"`

	// DamageScale is k in the reduction factor k/(k+defense).
	DamageScale float64 `yaml:"damage_scale"`
}

// CombatTunables bound the resolver's probability space.
type CombatTunables struct {
	HitBase        float64 `yaml:"hit_base"`
	AccuracyFactor float64 `yaml:"accuracy_factor"`
	HitChanceMin   float64 `yaml:"hit_chance_min"`
	HitChanceMax   float64 `yaml:"hit_chance_max"`

	CritChanceMin  float64 `yaml:"crit_chance_min"`
	CritChanceMax  float64 `yaml:"crit_chance_max"`
	CritMultiplier float64 `yaml:"crit_multiplier"`

	Variance     float64 `yaml:"variance"`
	MinHitDamage float64 `yaml:"min_hit_damage"`
}

// StatusTunables are status-engine defaults and scaling knobs.
type StatusTunables struct {
	DefaultMaxStacks    int     `yaml:"default_max_stacks"`
	DefaultIntensityCap int     `yaml:"default_intensity_cap"`
	HealBonus           float64 `yaml:"heal_bonus"`
}

// RarityTier is one loot quality tier: rolling weight, total stat budget,
// price multiplier, affix count.
type RarityTier struct {
	Name       model.Rarity `yaml:"name"`
	Weight     float64      `yaml:"weight"`
	StatBudget float64      `yaml:"stat_budget"`
	PriceMult  float64      `yaml:"price_mult"`
	AffixCount int          `yaml:"affix_count"`
}

// LootTunables drive the loot generator.
type LootTunables struct {
	Tiers []RarityTier `yaml:"tiers"`

	LevelScalingBase     float64 `yaml:"level_scaling_base"`
	LevelScalingPerLevel float64 `yaml:"level_scaling_per_level"`
	BasePrice            float64 `yaml:"base_price"`

	// BindFromTier: tiers at this index or above bind on equip.
	BindFromTier int `yaml:"bind_from_tier"`
}

// SimTunables bound the fight simulator.
type SimTunables struct {
	TurnCap int `yaml:"turn_cap"`
}

// Default returns the baseline ruleset.
func Default() Tunables {
	return Tunables{
		RuleVersion: RuleVersion,
		Stats: StatTunables{
			HPBase:     50,
			HPPerVit:   12,
			HPPerLevel: 6,

			MPBase:     30,
			MPPerWis:   8,
			MPPerLevel: 3,

			AttackBase:   5,
			AttackPerStr: 2.2,
			MagicBase:    5,
			MagicPerInt:  2.4,

			DefensePerVit:  1.6,
			MagicDefPerWis: 1.5,

			AccuracyBase:   70,
			AccuracyPerDex: 2.5,
			EvasionBase:    20,
			EvasionPerDex:  1.8,

			CritBase:   0.05,
			CritPerDex: 0.003,

			SpeedBase:   10,
			SpeedPerDex: 0.5,
		},
		Mitigation: MitigationTunables{
			SoftCap:       120,
			HardCap:       300,
			OverflowSlope: 0.4,

			ResistSoftCap:       0.4,
			ResistHardCap:       1.0,
			ResistOverflowSlope: 0.5,
			ResistMin:           -0.5,
			ResistMax:           0.8,

			DamageScale: 100,
		},
		Combat: CombatTunables{
			HitBase:        0.80,
			AccuracyFactor: 0.004,
			HitChanceMin:   0.05,
			HitChanceMax:   0.95,

			CritChanceMin:  0.01,
			CritChanceMax:  0.50,
			CritMultiplier: 1.75,

			Variance:     0.10,
			MinHitDamage: 1,
		},
		Status: StatusTunables{
			DefaultMaxStacks:    5,
			DefaultIntensityCap: 3,
			HealBonus:           1.2,
		},
		Loot: LootTunables{
			Tiers: []RarityTier{
				{Name: model.RarityCommon, Weight: 100, StatBudget: 10, PriceMult: 1, AffixCount: 1},
				{Name: model.RarityUncommon, Weight: 55, StatBudget: 18, PriceMult: 2.2, AffixCount: 2},
				{Name: model.RarityRare, Weight: 24, StatBudget: 30, PriceMult: 5, AffixCount: 3},
				{Name: model.RarityEpic, Weight: 9, StatBudget: 48, PriceMult: 12, AffixCount: 4},
				{Name: model.RarityLegendary, Weight: 3, StatBudget: 72, PriceMult: 30, AffixCount: 5},
				{Name: model.RarityMythic, Weight: 1, StatBudget: 100, PriceMult: 80, AffixCount: 6},
			},
			LevelScalingBase:     1.0,
			LevelScalingPerLevel: 0.08,
			BasePrice:            25,
			BindFromTier:         3, // epic and above
		},
		Progression: model.XPCurve{
			Base:     60,
			Exponent: 2.4,
			MaxLevel: 60,
		},
		Sim: SimTunables{
			TurnCap: 100,
		},
	}
}

// Build constructs Tunables from defaults plus an optional override set.
// It never fails: a nil or partial override simply keeps the defaults.
func Build(overrides *Overrides) Tunables {
	t := Default()
	t.apply(overrides)
	return t
}

// ForPreset builds Tunables for a named preset, then applies caller
// overrides on top. Unknown preset names are an error.
func ForPreset(name string, overrides *Overrides) (Tunables, error) {
	preset, ok := presets[name]
	if !ok {
		return Tunables{}, fmt.Errorf("unknown tunables preset %q", name)
	}
	t := Default()
	t.apply(preset)
	t.apply(overrides)
	return t, nil
}

// presets are named overlays on the default ruleset.
var presets = map[string]*Overrides{
	"default": nil,
	// brutal: swingier fights — bigger crits, wider variance, weaker healing.
	"brutal": {
		Combat: &CombatOverrides{
			CritMultiplier: f64(2.25),
			Variance:       f64(0.18),
		},
		Status: &StatusOverrides{
			HealBonus: f64(1.0),
		},
	},
	// swift: short skirmishes for quick balance sweeps.
	"swift": {
		Combat: &CombatOverrides{
			HitBase: f64(0.9),
		},
		Sim: &SimOverrides{
			TurnCap: intp(40),
		},
	},
}

// PresetNames lists the available preset names.
func PresetNames() []string {
	return []string{"default", "brutal", "swift"}
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }
