// Package loot procedurally generates items: a rarity-weighted roll, a
// level-scaled stat budget distributed over flat rolls and affixes, and
// deterministic batches. Identical (seed, label) inputs always produce the
// identical item.
package loot

import (
	"fmt"
	"math"
	"unicode"

	"github.com/google/uuid"

	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
	"github.com/veydris/embercore/internal/rng"
)

// primaryStat maps each slot to the flat stat its budget share lands on.
var primaryStat = map[model.EquipSlot]model.Stat{
	model.SlotWeapon: model.StatAttack,
	model.SlotHead:   model.StatMagicDefense,
	model.SlotChest:  model.StatMaxHP,
	model.SlotLegs:   model.StatDefense,
	model.SlotFeet:   model.StatSpeed,
	model.SlotHands:  model.StatAccuracy,
	model.SlotRing:   model.StatCritChance,
	model.SlotAmulet: model.StatMaxMP,
}

// affixPool lists the stats affixes may roll, in declaration order.
var affixPool = []model.Stat{
	model.StatAttack, model.StatMagicAttack,
	model.StatDefense, model.StatMagicDefense,
	model.StatAccuracy, model.StatEvasion,
	model.StatMaxHP, model.StatMaxMP, model.StatSpeed,
}

// slotNouns name generated items per slot.
var slotNouns = map[model.EquipSlot]string{
	model.SlotWeapon: "Blade",
	model.SlotHead:   "Helm",
	model.SlotChest:  "Cuirass",
	model.SlotLegs:   "Greaves",
	model.SlotFeet:   "Treads",
	model.SlotHands:  "Gauntlets",
	model.SlotRing:   "Band",
	model.SlotAmulet: "Talisman",
}

// RollRarity draws one rarity from the cumulative weight distribution of
// the configured tiers. The first cumulative bucket the draw falls under
// wins; ties break by declaration order. Deterministic in (seed, label).
func RollRarity(seed int64, label string, tun config.Tunables) model.Rarity {
	seq := rng.New(rng.SubSeed(seed, label))
	_, tier := rollTier(seq, tun)
	return tier.Name
}

// rollTier picks a tier index from one "rarity" draw. A caller-supplied
// tier table with no positive weight coerces to the first (most common)
// tier rather than falling through to the rarest.
func rollTier(seq *rng.Sequence, tun config.Tunables) (int, config.RarityTier) {
	tiers := tun.Loot.Tiers
	total := 0.0
	for _, t := range tiers {
		total += t.Weight
	}
	if total <= 0 {
		seq.Next("rarity") // keep the draw sequence stable
		return 0, tiers[0]
	}
	roll := seq.Next("rarity") * total
	cum := 0.0
	for i, t := range tiers {
		cum += t.Weight
		if roll < cum {
			return i, t
		}
	}
	return len(tiers) - 1, tiers[len(tiers)-1]
}

// GenerateItem rolls one item for (seed, label): rarity, then a level-scaled
// stat budget split between the slot's primary stat and the tier's affixes.
// Each affix takes a rolled fraction of the remaining budget; the last takes
// the remainder, so the budget is always fully and exactly allocated.
func GenerateItem(seed int64, label string, level int, slot model.EquipSlot, tun config.Tunables) model.Item {
	seq := rng.New(rng.SubSeed(seed, label))
	tierIdx, tier := rollTier(seq, tun)

	l := tun.Loot
	scaling := l.LevelScalingBase + l.LevelScalingPerLevel*float64(level)
	budget := tier.StatBudget * scaling

	item := model.Item{
		ID:            itemID(seed, label),
		Name:          fmt.Sprintf("%s %s", titleCase(string(tier.Name)), slotNouns[slot]),
		Slot:          slot,
		Rarity:        tier.Name,
		DropTier:      tierIdx,
		Mods:          map[model.Stat]float64{},
		RequiredLevel: level,
		Power:         round2(budget),
		Price:         int64(math.Round(l.BasePrice * tier.PriceMult * scaling)),
		Bind:          model.BindNone,
	}
	if tierIdx >= l.BindFromTier {
		item.Bind = model.BindOnEquip
	}

	// Primary flat roll takes its share first; affixes split the rest.
	remaining := budget
	shares := tier.AffixCount + 1
	for i := 0; i < shares; i++ {
		var value float64
		if i == shares-1 {
			value = remaining // last share takes the remainder
		} else {
			value = remaining * seq.NextRange("share", 0.2, 0.8)
			remaining -= value
		}
		if i == 0 {
			item.Mods[primaryStat[slot]] += round2(value)
			continue
		}
		stat := affixPool[int(seq.Next("affix-stat")*float64(len(affixPool)))]
		item.Affixes = append(item.Affixes, model.Affix{Stat: stat, Value: round2(value)})
	}

	return item
}

// GenerateBatch rolls count items, deriving a fresh sub-seed per item so no
// stream is ever reused: a batch from seed N reproduces identically.
func GenerateBatch(seed int64, count, level int, tun config.Tunables) []model.Item {
	items := make([]model.Item, 0, count)
	for i := 0; i < count; i++ {
		label := fmt.Sprintf("batch/%d", i)
		slotSeq := rng.New(rng.SubSeed(seed, label+"/slot"))
		slot := model.AllSlots[int(slotSeq.Next("slot")*float64(len(model.AllSlots)))]
		items = append(items, GenerateItem(seed, label, level, slot, tun))
	}
	return items
}

// itemID derives a stable UUIDv5 identity from the roll coordinates.
func itemID(seed int64, label string) string {
	name := fmt.Sprintf("embercore/item/%d/%s", seed, label)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func titleCase(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
