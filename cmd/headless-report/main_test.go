package main

import (
	"testing"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

func TestAggregate_MeansAndMedian(t *testing.T) {
	all := []runStats{
		{summary: game.Summary{Score: 2, Crossings: 2, Hits: 3, Ticks: 600, GameOver: true}},
		{summary: game.Summary{Score: 9, Crossings: 4, Hits: 1, Collected: 2, Ticks: 1200}},
		{summary: game.Summary{Score: 4, Crossings: 3, Hits: 2, Expired: 3, Ticks: 900}},
		{summary: game.Summary{Score: 5, Crossings: 3, Hits: 3, Ticks: 300, GameOver: true}},
	}
	agg := aggregate(all)
	if agg.runs != 4 || agg.gameOvers != 2 {
		t.Fatalf("expected runs=4 game_overs=2, got runs=%d game_overs=%d", agg.runs, agg.gameOvers)
	}
	if agg.meanScore != 5 {
		t.Fatalf("expected mean score 5, got %.2f", agg.meanScore)
	}
	if agg.medianScore != 4.5 {
		t.Fatalf("expected median 4.5, got %.2f", agg.medianScore)
	}
	if agg.maxScore != 9 {
		t.Fatalf("expected max 9, got %d", agg.maxScore)
	}
	if agg.meanTicks != 750 {
		t.Fatalf("expected mean ticks 750, got %.2f", agg.meanTicks)
	}
	if r := survivalRate(agg); r != 0.5 {
		t.Fatalf("expected survival rate 0.5, got %.2f", r)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := aggregate(nil)
	if agg.runs != 0 || survivalRate(agg) != 0 {
		t.Fatalf("expected empty aggregate, got %+v", agg)
	}
}

func TestFirstTick(t *testing.T) {
	entries := []game.Event{
		{Tick: 4, Category: game.CategoryEnemy, Key: game.KeyEnemyExit},
		{Tick: 9, Category: game.CategoryEnemy, Key: game.KeyEnemyHit},
		{Tick: 12, Category: game.CategoryEnemy, Key: game.KeyEnemyHit},
	}
	if got := firstTick(entries, game.CategoryEnemy, game.KeyEnemyHit); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := firstTick(entries, game.CategoryPlayer, game.KeyPlayerCross); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestPilotByName(t *testing.T) {
	for _, name := range []string{"cautious", "Random", "idle"} {
		if _, err := pilotByName(name, 1); err != nil {
			t.Errorf("pilot %q: %v", name, err)
		}
	}
	if _, err := pilotByName("kamikaze", 1); err == nil {
		t.Fatal("expected unknown pilot to be rejected")
	}
}

func TestRunSession_IdlePilotNeverScores(t *testing.T) {
	rs, events, err := runSession(game.DefaultSettings(), 1, 42, 600, "idle", 10, false)
	if err != nil {
		t.Fatalf("runSession: %v", err)
	}
	if rs.summary.Crossings != 0 || rs.summary.Score != 0 {
		t.Fatalf("idle pilot should never cross, got %+v", rs.summary)
	}
	if rs.firstCrossTick != -1 {
		t.Fatalf("expected no crossing marker, got %d", rs.firstCrossTick)
	}
	if events == nil {
		t.Fatal("expected the session event log")
	}
}

func TestRunSession_DeterministicPerSeed(t *testing.T) {
	a, _, err := runSession(game.DefaultSettings(), 1, 7, 1200, "random", 5, false)
	if err != nil {
		t.Fatalf("runSession: %v", err)
	}
	b, _, err := runSession(game.DefaultSettings(), 1, 7, 1200, "random", 5, false)
	if err != nil {
		t.Fatalf("runSession: %v", err)
	}
	if a.summary != b.summary {
		t.Fatalf("expected identical summaries for the same seed, got %+v vs %+v", a.summary, b.summary)
	}
}
