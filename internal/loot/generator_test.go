package loot

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
	"github.com/veydris/embercore/internal/testutil"
)

func TestRollRarityDeterministic(t *testing.T) {
	tun := testutil.Tunables()
	for i := int64(0); i < 20; i++ {
		a := RollRarity(i, "chest", tun)
		b := RollRarity(i, "chest", tun)
		if a != b {
			t.Fatalf("seed %d: %s != %s", i, a, b)
		}
	}
}

func TestRollRarityConvergesToWeights(t *testing.T) {
	tun := testutil.Tunables()
	const n = 50000

	counts := make(map[model.Rarity]int)
	for i := 0; i < n; i++ {
		counts[RollRarity(int64(i), "sample", tun)]++
	}

	total := 0.0
	for _, tier := range tun.Loot.Tiers {
		total += tier.Weight
	}
	for _, tier := range tun.Loot.Tiers {
		want := tier.Weight / total
		got := float64(counts[tier.Name]) / n
		assert.InDelta(t, want, got, 0.01, "tier %s", tier.Name)
		// Every declared tier must be reachable.
		assert.Positive(t, counts[tier.Name], "tier %s never rolled", tier.Name)
	}
}

func TestRollRarityZeroWeightsCoerceToFirstTier(t *testing.T) {
	tun := testutil.Tunables()
	for i := range tun.Loot.Tiers {
		tun.Loot.Tiers[i].Weight = 0
	}
	for seed := int64(0); seed < 20; seed++ {
		assert.Equal(t, model.RarityCommon, RollRarity(seed, "zero-weight", tun))
	}
}

func TestGenerateItemNameFromOverriddenTier(t *testing.T) {
	// Override tier lists replace wholesale, so names arrive in whatever
	// case the file author wrote them.
	tun := testutil.Tunables()
	tun.Loot.Tiers = []config.RarityTier{
		{Name: "Epic", Weight: 1, StatBudget: 10, PriceMult: 1, AffixCount: 1},
	}

	item := GenerateItem(3, "named", 10, model.SlotWeapon, tun)

	assert.Equal(t, "Epic Blade", item.Name)
	assert.Equal(t, model.Rarity("Epic"), item.Rarity)
}

func TestGenerateItemDeterministic(t *testing.T) {
	tun := testutil.Tunables()

	a := GenerateItem(7, "drop/1", 12, model.SlotWeapon, tun)
	b := GenerateItem(7, "drop/1", 12, model.SlotWeapon, tun)

	aj, err := json.Marshal(a)
	require.NoError(t, err)
	bj, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, aj, bj, "same (seed,label) must produce the identical item")

	c := GenerateItem(7, "drop/2", 12, model.SlotWeapon, tun)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestGenerateItemBudgetFullyAllocated(t *testing.T) {
	tun := testutil.Tunables()

	for seed := int64(0); seed < 100; seed++ {
		item := GenerateItem(seed, "budget", 10, model.SlotChest, tun)

		tierIdx := -1
		for i := range tun.Loot.Tiers {
			if tun.Loot.Tiers[i].Name == item.Rarity {
				tierIdx = i
				break
			}
		}
		require.GreaterOrEqual(t, tierIdx, 0, "item rolled unknown rarity %s", item.Rarity)

		tier := tun.Loot.Tiers[tierIdx]
		budget := tier.StatBudget *
			(tun.Loot.LevelScalingBase + tun.Loot.LevelScalingPerLevel*10)

		allocated := 0.0
		for _, v := range item.Mods {
			allocated += v
		}
		for _, affix := range item.Affixes {
			allocated += affix.Value
		}
		assert.InDelta(t, budget, allocated, 0.1, "seed %d rarity %s", seed, item.Rarity)
		assert.Len(t, item.Affixes, tier.AffixCount)
	}
}

func TestGenerateItemAffixesPositive(t *testing.T) {
	tun := testutil.Tunables()
	for seed := int64(0); seed < 50; seed++ {
		item := GenerateItem(seed, "positive", 20, model.SlotRing, tun)
		for _, affix := range item.Affixes {
			assert.Positive(t, affix.Value, "seed %d", seed)
		}
		assert.Positive(t, item.Mods[model.StatCritChance], "primary roll missing")
	}
}

func TestGenerateItemLevelScaling(t *testing.T) {
	tun := testutil.Tunables()

	// Same rarity, wildly different levels: magnitude must scale hard.
	totalAt := func(level int) float64 {
		total := 0.0
		n := 0
		for seed := int64(0); seed < 200; seed++ {
			item := GenerateItem(seed, "scaling", level, model.SlotWeapon, tun)
			if item.Rarity != model.RarityCommon {
				continue
			}
			total += item.Power
			n++
		}
		require.Positive(t, n)
		return total / float64(n)
	}

	low := totalAt(5)
	high := totalAt(40)
	assert.Greater(t, high, low*2, "level 40 items must more than double level 5 items")
}

func TestGenerateItemPriceAndBind(t *testing.T) {
	tun := testutil.Tunables()

	seen := make(map[model.Rarity]model.Item)
	for seed := int64(0); seed < 3000 && len(seen) < len(tun.Loot.Tiers); seed++ {
		item := GenerateItem(seed, "pricing", 10, model.SlotAmulet, tun)
		if _, ok := seen[item.Rarity]; !ok {
			seen[item.Rarity] = item
		}
	}
	require.Len(t, seen, len(tun.Loot.Tiers), "all tiers reachable")

	var prevPrice int64 = -1
	for i, tier := range tun.Loot.Tiers {
		item := seen[tier.Name]
		assert.Greater(t, item.Price, prevPrice, "price must rise with rarity")
		prevPrice = item.Price

		wantBind := model.BindNone
		if i >= tun.Loot.BindFromTier {
			wantBind = model.BindOnEquip
		}
		assert.Equal(t, wantBind, item.Bind, "tier %s", tier.Name)
		assert.Equal(t, i, item.DropTier)
	}
}

func TestGenerateBatchReproducible(t *testing.T) {
	tun := testutil.Tunables()

	a := GenerateBatch(1234, 50, 15, tun)
	b := GenerateBatch(1234, 50, 15, tun)

	aj, err := json.Marshal(a)
	require.NoError(t, err)
	bj, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, aj, bj)

	c := GenerateBatch(1235, 50, 15, tun)
	cj, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotEqual(t, aj, cj)
}

func TestGenerateBatchDistinctItems(t *testing.T) {
	tun := testutil.Tunables()
	items := GenerateBatch(42, 100, 10, tun)
	require.Len(t, items, 100)

	ids := make(map[string]bool, len(items))
	for _, item := range items {
		if ids[item.ID] {
			t.Fatalf("duplicate item id %s in batch", item.ID)
		}
		ids[item.ID] = true
	}
}

func TestItemPowerMatchesBudget(t *testing.T) {
	tun := testutil.Tunables()
	item := GenerateItem(5, "power", 10, model.SlotLegs, tun)

	allocated := 0.0
	for _, v := range item.Mods {
		allocated += v
	}
	for _, affix := range item.Affixes {
		allocated += affix.Value
	}
	assert.InDelta(t, item.Power, allocated, 0.1)
	assert.False(t, math.IsNaN(item.Power))
}
