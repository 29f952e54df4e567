package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Garsondee/Gem-Crossing/internal/config"
	"github.com/Garsondee/Gem-Crossing/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	pilot    string

	summary game.Summary

	firstCrossTick   int
	firstHitTick     int
	firstCollectTick int
	gameOverTick     int
	avatar           string
}

type aggregateStats struct {
	runs        int
	gameOvers   int
	meanScore   float64
	medianScore float64
	maxScore    int
	meanCross   float64
	meanHits    float64
	meanCollect float64
	meanExpire  float64
	meanTicks   float64
}

var (
	header = color.New(color.FgCyan, color.Bold)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	dim    = color.New(color.FgHiBlack)
)

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var pilot string
	var moveEvery int
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per session")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&pilot, "pilot", "cautious", "autopilot: cautious, random or idle")
	flag.IntVar(&moveEvery, "move-every", 10, "ticks between autopilot decisions")
	flag.BoolVar(&verbose, "verbose", false, "print every session event")
	flag.Parse()

	if runs <= 0 {
		bad.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		bad.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	if _, err := pilotByName(pilot, 0); err != nil {
		bad.Printf("error: %v\n", err)
		os.Exit(2)
	}
	path := config.Path()
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		bad.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if created {
		dim.Printf("wrote default config to %s\n", path)
	}

	header.Printf("=== Headless Crossing Report ===\n")
	fmt.Printf("pilot=%s runs=%d ticks=%d seed_base=%d seed_step=%d move_every=%d\n\n",
		pilot, runs, ticks, seedBase, seedStep, moveEvery)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, events, err := runSession(cfg.Settings(), i+1, seed, ticks, pilot, moveEvery, verbose)
		if err != nil {
			bad.Printf("run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
		if verbose {
			dim.Print(events.Format())
		}
	}

	printAggregate(aggregate(all))
}

func pilotByName(name string, seed int64) (game.Pilot, error) {
	switch strings.ToLower(name) {
	case "cautious":
		return game.CautiousPilot{Lookahead: 600 * time.Millisecond}, nil
	case "random":
		return game.RandomPilot{Rng: rand.New(rand.NewSource(seed + 1))}, nil // #nosec G404 -- report only
	case "idle":
		return game.PilotFunc(func(*game.World) game.Direction { return game.DirNone }), nil
	default:
		return nil, fmt.Errorf("unsupported pilot %q (supported: cautious, random, idle)", name)
	}
}

func runSession(s game.Settings, runIndex int, seed int64, ticks int, pilotName string, moveEvery int, verbose bool) (runStats, *game.EventLog, error) {
	p, err := pilotByName(pilotName, seed)
	if err != nil {
		return runStats{}, nil, err
	}
	h, err := game.NewHarness(
		game.WithSettings(s),
		game.WithHarnessSeed(seed),
		game.WithPilot(p),
		game.WithMoveEvery(moveEvery),
		game.WithVerbose(verbose),
	)
	if err != nil {
		return runStats{}, nil, err
	}
	h.RunTicks(ticks)

	entries := h.Log.Entries()
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		pilot:            pilotName,
		summary:          h.Summary(),
		firstCrossTick:   firstTick(entries, game.CategoryPlayer, game.KeyPlayerCross),
		firstHitTick:     firstTick(entries, game.CategoryEnemy, game.KeyEnemyHit),
		firstCollectTick: firstTick(entries, game.CategoryToken, game.KeyTokenCollect),
		gameOverTick:     firstTick(entries, game.CategoryPlayer, game.KeyPlayerGameOver),
		avatar:           h.World.Player().Avatar,
	}, h.Log, nil
}

func firstTick(entries []game.Event, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func aggregate(all []runStats) aggregateStats {
	agg := aggregateStats{runs: len(all)}
	if len(all) == 0 {
		return agg
	}
	scores := make([]int, 0, len(all))
	for _, rs := range all {
		s := rs.summary
		scores = append(scores, s.Score)
		if s.GameOver {
			agg.gameOvers++
		}
		if s.Score > agg.maxScore {
			agg.maxScore = s.Score
		}
		agg.meanScore += float64(s.Score)
		agg.meanCross += float64(s.Crossings)
		agg.meanHits += float64(s.Hits)
		agg.meanCollect += float64(s.Collected)
		agg.meanExpire += float64(s.Expired)
		agg.meanTicks += float64(s.Ticks)
	}
	n := float64(len(all))
	agg.meanScore /= n
	agg.meanCross /= n
	agg.meanHits /= n
	agg.meanCollect /= n
	agg.meanExpire /= n
	agg.meanTicks /= n

	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		agg.medianScore = float64(scores[mid-1]+scores[mid]) / 2
	} else {
		agg.medianScore = float64(scores[mid])
	}
	return agg
}

func printRun(rs runStats) {
	s := rs.summary
	header.Printf("--- Run %d (seed=%d avatar=%s) ---\n", rs.runIndex, rs.seed, rs.avatar)
	fmt.Printf("phase_markers: first_cross=%d first_hit=%d first_collect=%d game_over=%d\n",
		rs.firstCrossTick, rs.firstHitTick, rs.firstCollectTick, rs.gameOverTick)
	fmt.Printf("event_totals: crossings=%d hits=%d collected=%d expired=%d\n",
		s.Crossings, s.Hits, s.Collected, s.Expired)
	outcome := good.Sprintf("alive lives=%d", s.Lives)
	if s.GameOver {
		outcome = bad.Sprintf("game over at tick %d", rs.gameOverTick)
	}
	fmt.Printf("result: score=%d ticks=%d %s\n\n", s.Score, s.Ticks, outcome)
}

func printAggregate(agg aggregateStats) {
	header.Println("=== Aggregate ===")
	fmt.Printf("runs=%d game_overs=%d survival_rate=%.2f\n",
		agg.runs, agg.gameOvers, survivalRate(agg))
	fmt.Printf("score: mean=%.2f median=%.1f max=%d\n", agg.meanScore, agg.medianScore, agg.maxScore)
	fmt.Printf("per_run: crossings=%.2f hits=%.2f collected=%.2f expired=%.2f ticks=%.0f\n",
		agg.meanCross, agg.meanHits, agg.meanCollect, agg.meanExpire, agg.meanTicks)
}

func survivalRate(agg aggregateStats) float64 {
	if agg.runs == 0 {
		return 0
	}
	return float64(agg.runs-agg.gameOvers) / float64(agg.runs)
}
