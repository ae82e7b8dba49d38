// balancesim fights two canned builds against each other over many seeded
// trials and reports time-to-kill and loot-rarity distributions. It is the
// offline harness behind the balance test-suite: same rules code, bigger
// samples.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/caarlos0/env/v11"
	"golang.org/x/sync/errgroup"

	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/loot"
	"github.com/veydris/embercore/internal/model"
	"github.com/veydris/embercore/internal/sim"
	"github.com/veydris/embercore/internal/testutil"
)

type envConfig struct {
	LogLevel string `env:"BALANCESIM_LOG_LEVEL" envDefault:"info"`
	Workers  int    `env:"BALANCESIM_WORKERS" envDefault:"4"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		trials    = flag.Int("trials", 2000, "number of seeded fights")
		baseSeed  = flag.Int64("seed", 1, "base seed; trial i uses seed+i")
		preset    = flag.String("preset", "default", "tunables preset")
		overrides = flag.String("overrides", "", "YAML tunables override file")
		level     = flag.Int("level", 10, "build level")
		lootCount = flag.Int("loot", 5000, "loot rolls for the rarity table")
	)
	flag.Parse()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(ec.LogLevel),
	})))

	var o *config.Overrides
	if *overrides != "" {
		var err error
		if o, err = config.LoadOverrides(*overrides); err != nil {
			return err
		}
	}
	tun, err := config.ForPreset(*preset, o)
	if err != nil {
		return err
	}

	slog.Info("balancesim starting",
		"trials", *trials, "seed", *baseSeed,
		"preset", *preset, "workers", ec.Workers,
		"rule_version", tun.RuleVersion)

	warrior := sim.Build{Actor: testutil.Warrior("warrior", *level), Skill: testutil.Strike()}
	mage := sim.Build{Actor: testutil.Mage("mage", *level), Skill: testutil.Firebolt()}

	turns, wins := runFights(*trials, *baseSeed, ec.Workers, warrior, mage, tun)
	reportFights(turns, wins)

	rarities := rollRarities(*lootCount, *baseSeed, *level, tun)
	reportRarities(rarities, *lootCount, tun)

	return nil
}

// runFights fans trials out across workers. Each trial owns its own seed,
// so parallel execution cannot perturb any individual result.
func runFights(trials int, baseSeed int64, workers int, a, b sim.Build, tun config.Tunables) ([]int, map[string]int) {
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	turns := make([]int, 0, trials)
	wins := make(map[string]int)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < trials; i++ {
		seed := baseSeed + int64(i)
		g.Go(func() error {
			res := sim.Fight(seed, a, b, sim.Options{}, tun)
			mu.Lock()
			turns = append(turns, res.Turns)
			wins[res.Winner]++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; the group is used for limiting

	sort.Ints(turns)
	return turns, wins
}

func reportFights(turns []int, wins map[string]int) {
	if len(turns) == 0 {
		return
	}
	total := 0
	for _, t := range turns {
		total += t
	}
	slog.Info("time to kill",
		"fights", len(turns),
		"mean_turns", fmt.Sprintf("%.2f", float64(total)/float64(len(turns))),
		"p50", turns[len(turns)/2],
		"p95", turns[len(turns)*95/100],
		"max", turns[len(turns)-1])
	for winner, n := range wins {
		if winner == "" {
			winner = "(draw)"
		}
		slog.Info("winner share", "winner", winner, "fights", n)
	}
}

func rollRarities(count int, baseSeed int64, level int, tun config.Tunables) map[model.Rarity]int {
	out := make(map[model.Rarity]int)
	for _, item := range loot.GenerateBatch(baseSeed, count, level, tun) {
		out[item.Rarity]++
	}
	return out
}

func reportRarities(rarities map[model.Rarity]int, total int, tun config.Tunables) {
	for _, tier := range tun.Loot.Tiers {
		n := rarities[tier.Name]
		slog.Info("rarity share",
			"rarity", tier.Name,
			"count", n,
			"observed", fmt.Sprintf("%.4f", float64(n)/float64(total)))
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
