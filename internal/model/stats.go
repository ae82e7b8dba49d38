package model

// Stat names the closed set of derived-stat keys that modifiers may target.
// Keeping the key set closed (instead of free-form strings) means an unknown
// key in a modifier payload is a compile-time or test-time failure, never a
// silently ignored entry.
type Stat string

const (
	StatMaxHP        Stat = "maxHP"
	StatMaxMP        Stat = "maxMP"
	StatAttack       Stat = "attack"
	StatMagicAttack  Stat = "magicAttack"
	StatDefense      Stat = "defense"
	StatMagicDefense Stat = "magicDefense"
	StatAccuracy     Stat = "accuracy"
	StatEvasion      Stat = "evasion"
	StatCritChance   Stat = "critChance"
	StatSpeed        Stat = "speed"
)

// AllStats lists every derived-stat key in declaration order.
var AllStats = []Stat{
	StatMaxHP, StatMaxMP,
	StatAttack, StatMagicAttack,
	StatDefense, StatMagicDefense,
	StatAccuracy, StatEvasion,
	StatCritChance, StatSpeed,
}

// Element identifies a damage/resistance channel.
type Element string

const (
	ElementPhysical Element = "physical"
	ElementFire     Element = "fire"
	ElementFrost    Element = "frost"
	ElementShock    Element = "shock"
	ElementVenom    Element = "venom"
	ElementShadow   Element = "shadow"
)

// AllElements lists every element in declaration order.
var AllElements = []Element{
	ElementPhysical, ElementFire, ElementFrost,
	ElementShock, ElementVenom, ElementShadow,
}

// BaseStats are the raw attribute axes a character grows over levels.
type BaseStats struct {
	Strength     float64 `json:"strength" yaml:"strength"`
	Dexterity    float64 `json:"dexterity" yaml:"dexterity"`
	Intelligence float64 `json:"intelligence" yaml:"intelligence"`
	Vitality     float64 `json:"vitality" yaml:"vitality"`
	Wisdom       float64 `json:"wisdom" yaml:"wisdom"`
}

// Add returns base stats increased by the growth vector applied n times.
func (b BaseStats) Add(growth BaseStats, n int) BaseStats {
	f := float64(n)
	return BaseStats{
		Strength:     b.Strength + growth.Strength*f,
		Dexterity:    b.Dexterity + growth.Dexterity*f,
		Intelligence: b.Intelligence + growth.Intelligence*f,
		Vitality:     b.Vitality + growth.Vitality*f,
		Wisdom:       b.Wisdom + growth.Wisdom*f,
	}
}

// DerivedStats is the Stat Deriver's output: everything combat reads.
// Resistances are fractional (-0.5 … +0.8 after clamping).
type DerivedStats struct {
	MaxHP        float64             `json:"maxHP"`
	MaxMP        float64             `json:"maxMP"`
	Attack       float64             `json:"attack"`
	MagicAttack  float64             `json:"magicAttack"`
	Defense      float64             `json:"defense"`
	MagicDefense float64             `json:"magicDefense"`
	Accuracy     float64             `json:"accuracy"`
	Evasion      float64             `json:"evasion"`
	CritChance   float64             `json:"critChance"`
	Speed        float64             `json:"speed"`
	Resists      map[Element]float64 `json:"resists"`
}

// Resist returns the clamped resistance for an element, zero when absent.
func (d DerivedStats) Resist(el Element) float64 {
	if d.Resists == nil {
		return 0
	}
	return d.Resists[el]
}

// StatMods carries flat additions and percentage multipliers keyed by stat.
// Flat is applied before Percent, whatever the modifier source, so results
// never depend on equipment/status iteration order.
type StatMods struct {
	Flat    map[Stat]float64 `json:"flat,omitempty" yaml:"flat,omitempty"`
	Percent map[Stat]float64 `json:"percent,omitempty" yaml:"percent,omitempty"`
}

// Merge folds other into a copy of m, scaling other's values by scale.
func (m StatMods) Merge(other StatMods, scale float64) StatMods {
	out := StatMods{
		Flat:    make(map[Stat]float64, len(m.Flat)+len(other.Flat)),
		Percent: make(map[Stat]float64, len(m.Percent)+len(other.Percent)),
	}
	for k, v := range m.Flat {
		out.Flat[k] = v
	}
	for k, v := range m.Percent {
		out.Percent[k] = v
	}
	for k, v := range other.Flat {
		out.Flat[k] += v * scale
	}
	for k, v := range other.Percent {
		out.Percent[k] += v * scale
	}
	return out
}
