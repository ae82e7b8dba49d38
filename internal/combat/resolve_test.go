package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veydris/embercore/internal/model"
	"github.com/veydris/embercore/internal/rng"
	"github.com/veydris/embercore/internal/stats"
	"github.com/veydris/embercore/internal/testutil"
)

func testInput(t *testing.T, skill model.Skill) Input {
	t.Helper()
	tun := testutil.Tunables()
	attacker := stats.Recompute(testutil.Warrior("a", 10), tun)
	target := stats.Recompute(testutil.Mage("b", 10), tun)
	return Input{
		Attacker:      attacker.Derived,
		Target:        target.Derived,
		Skill:         skill,
		AttackerLevel: attacker.Level,
	}
}

func TestHitChanceAlwaysClamped(t *testing.T) {
	tun := testutil.Tunables()

	// Sweep a wide accuracy/evasion grid; every value must stay inside
	// the policy band.
	for acc := -500.0; acc <= 500; acc += 25 {
		for eva := -500.0; eva <= 500; eva += 25 {
			got := HitChance(acc, eva, 0, tun)
			if got < tun.Combat.HitChanceMin || got > tun.Combat.HitChanceMax {
				t.Fatalf("HitChance(%v, %v) = %v outside [%v, %v]",
					acc, eva, got, tun.Combat.HitChanceMin, tun.Combat.HitChanceMax)
			}
		}
	}

	// Extremes pin to the clamp bounds exactly.
	assert.Equal(t, tun.Combat.HitChanceMax, HitChance(10000, 0, 0, tun))
	assert.Equal(t, tun.Combat.HitChanceMin, HitChance(0, 10000, 0, tun))
}

func TestCritChanceClamped(t *testing.T) {
	tun := testutil.Tunables()
	assert.Equal(t, tun.Combat.CritChanceMax, CritChance(2.0, 0, tun))
	assert.Equal(t, tun.Combat.CritChanceMin, CritChance(0, 0, tun))
}

func TestResolveDeterministic(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Strike())

	a := Resolve(in, rng.New(99), tun)
	b := Resolve(in, rng.New(99), tun)

	assert.Equal(t, a, b)
}

func TestResolveDrawOrder(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Strike())

	seq := rng.New(4)
	out := Resolve(in, seq, tun)
	require.True(t, out.Hit || len(seq.Rolls()) == 1)

	labels := make([]string, 0, 3)
	for _, roll := range seq.Rolls() {
		labels = append(labels, roll.Label)
	}
	if out.Hit {
		assert.Equal(t, []string{"hit", "crit", "variance"}, labels)
	} else {
		assert.Equal(t, []string{"hit"}, labels)
	}
}

func TestResolveMissDealsNothing(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Strike())

	// Find a seed that misses; with a ~95% capped hit chance a handful
	// of seeds is enough.
	for seed := int64(0); seed < 500; seed++ {
		out := Resolve(in, rng.New(seed), tun)
		if !out.Hit {
			assert.Zero(t, out.Damage)
			assert.Zero(t, out.Heal)
			assert.False(t, out.Crit)
			return
		}
	}
	t.Fatal("no miss found in 500 seeds; hit clamp broken?")
}

func TestResolveMinimumDamageOnHit(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Strike())
	// A target so armored the pipeline would round to zero.
	in.Target.Defense = tun.Mitigation.HardCap
	in.Attacker.Attack = 0
	in.Skill.Power = model.ScaledValue{Base: 0.5}
	in.Skill.PowerScale = 0

	for seed := int64(0); seed < 200; seed++ {
		out := Resolve(in, rng.New(seed), tun)
		if out.Hit {
			assert.GreaterOrEqual(t, out.Damage, 1, "seed %d", seed)
			return
		}
	}
	t.Fatal("no hit found in 200 seeds")
}

func TestResolveCritOutdamagesNormal(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Strike())

	var critDmg, plainDmg int
	for seed := int64(0); seed < 2000 && (critDmg == 0 || plainDmg == 0); seed++ {
		out := Resolve(in, rng.New(seed), tun)
		switch {
		case out.Hit && out.Crit && critDmg == 0:
			critDmg = out.Damage
		case out.Hit && !out.Crit && plainDmg == 0:
			plainDmg = out.Damage
		}
	}
	require.NotZero(t, critDmg, "no crit in 2000 seeds")
	require.NotZero(t, plainDmg)
	// ±10% variance cannot erase a 1.75× crit multiplier.
	assert.Greater(t, critDmg, plainDmg)
}

func TestResolveHealNeverMisses(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Mend())

	for seed := int64(0); seed < 50; seed++ {
		out := Resolve(in, rng.New(seed), tun)
		assert.True(t, out.Hit, "seed %d", seed)
		assert.Positive(t, out.Heal)
		assert.Zero(t, out.Damage)
	}
}

func TestExpectedDamageMatchesPipeline(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Strike())

	expected := ExpectedDamage(in, tun)
	assert.Positive(t, expected)

	// Non-crit resolved damage stays within the variance band around the
	// expected value (floor slack of 1 on each side).
	lo := expected*(1-tun.Combat.Variance) - 1
	hi := expected*(1+tun.Combat.Variance) + 1
	for seed := int64(0); seed < 300; seed++ {
		out := Resolve(in, rng.New(seed), tun)
		if !out.Hit || out.Crit {
			continue
		}
		assert.GreaterOrEqual(t, float64(out.Damage), lo, "seed %d", seed)
		assert.LessOrEqual(t, float64(out.Damage), hi, "seed %d", seed)
	}
}

func TestExpectedDamageRespectsResists(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Firebolt())

	base := ExpectedDamage(in, tun)

	in.Target.Resists = map[model.Element]float64{model.ElementFire: 0.5}
	resisted := ExpectedDamage(in, tun)

	assert.Less(t, resisted, base)
	// Halving the post-mitigation amount, give or take flooring.
	assert.InDelta(t, base/2, resisted, 2.5)
}

func TestExpectedDamageMitigation(t *testing.T) {
	tun := testutil.Tunables()
	in := testInput(t, testutil.Strike())

	soft := ExpectedDamage(in, tun)
	in.Target.Defense *= 4
	hard := ExpectedDamage(in, tun)

	assert.Less(t, hard, soft, "more defense must mean less damage")
	assert.Positive(t, hard, "mitigation never zeroes a hit")
}
