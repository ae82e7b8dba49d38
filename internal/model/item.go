package model

// Rarity is an ordered loot quality tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// BindPolicy says when an item becomes untradeable.
type BindPolicy string

const (
	BindNone    BindPolicy = "none"
	BindOnEquip BindPolicy = "on_equip"
	BindOnDrop  BindPolicy = "on_drop"
)

// Affix is one rolled bonus on an item.
type Affix struct {
	Stat  Stat    `json:"stat"`
	Value float64 `json:"value"`
}

// Item is a generated piece of equipment. Immutable once rolled: equipping
// and unequipping only changes which actor references it.
type Item struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Slot     EquipSlot `json:"slot"`
	Rarity   Rarity    `json:"rarity"`
	DropTier int       `json:"dropTier"`

	Mods    map[Stat]float64 `json:"mods,omitempty"`
	Affixes []Affix          `json:"affixes,omitempty"`

	RequiredLevel int        `json:"requiredLevel"`
	Power         float64    `json:"power"`
	Price         int64      `json:"price"`
	Bind          BindPolicy `json:"bind"`
}
