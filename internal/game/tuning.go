package game

import (
	"fmt"
	"time"
)

const (
	defaultStartLives  = 3
	defaultMaxLives    = 5
	defaultEnemyCount  = 6
	defaultTimerStep   = 1500 * time.Millisecond
	defaultJitterScale = 3.0 // vertical nudge is RandomInteger(-1,1)/defaultJitterScale
)

// PlayerTuning controls the player's lives and starting cell.
type PlayerTuning struct {
	StartLives int
	MaxLives   int
	StartRow   int
	StartCols  Range
}

// EnemyTuning controls the roster and the respawn policy of enemies.
type EnemyTuning struct {
	Count  int
	Cols   Range // spawn columns, west of the field
	Rows   Range
	Speed  Range // pixels per second
	Jitter float64
}

// TokenTuning controls where tokens appear and for how long.
// Delay and Fade are multiples of Step.
type TokenTuning struct {
	Cols  Range
	Rows  Range
	Delay Range
	Fade  Range
	Step  time.Duration
}

// Settings is everything a World needs besides its catalogs.
type Settings struct {
	Grid   Grid
	Player PlayerTuning
	Enemy  EnemyTuning
	Token  TokenTuning
}

// DefaultSettings returns the classic tuning.
func DefaultSettings() Settings {
	return Settings{
		Grid: DefaultGrid(),
		Player: PlayerTuning{
			StartLives: defaultStartLives,
			MaxLives:   defaultMaxLives,
			StartRow:   5,
			StartCols:  Range{Min: 0, Max: 4},
		},
		Enemy: EnemyTuning{
			Count:  defaultEnemyCount,
			Cols:   Range{Min: -3, Max: -1},
			Rows:   Range{Min: 1, Max: 3},
			Speed:  Range{Min: 75, Max: 200},
			Jitter: defaultJitterScale,
		},
		Token: TokenTuning{
			Cols:  Range{Min: 0, Max: 4},
			Rows:  Range{Min: 1, Max: 3},
			Delay: Range{Min: 2, Max: 10},
			Fade:  Range{Min: 5, Max: 10},
			Step:  defaultTimerStep,
		},
	}
}

// Validate reports the first configuration error found.
func (s Settings) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	p := s.Player
	if p.MaxLives <= 0 || p.StartLives <= 0 || p.StartLives > p.MaxLives {
		return fmt.Errorf("player lives start=%d max=%d: %w", p.StartLives, p.MaxLives, ErrInvalidRange)
	}
	// Row 0 is the water.
	if p.StartRow <= 0 || p.StartRow >= s.Grid.Rows {
		return fmt.Errorf("player start row %d of %d: %w", p.StartRow, s.Grid.Rows, ErrInvalidRange)
	}
	e := s.Enemy
	if e.Count <= 0 {
		return fmt.Errorf("enemy count %d: %w", e.Count, ErrInvalidRange)
	}
	if e.Speed.Min <= 0 {
		return fmt.Errorf("enemy speed min %d: %w", e.Speed.Min, ErrInvalidRange)
	}
	if e.Jitter <= 0 {
		return fmt.Errorf("enemy jitter scale %v: %w", e.Jitter, ErrInvalidRange)
	}
	t := s.Token
	if t.Step <= 0 {
		return fmt.Errorf("token timer step %v: %w", t.Step, ErrInvalidRange)
	}
	if t.Delay.Min < 0 || t.Fade.Min <= 0 {
		return fmt.Errorf("token timers delay>=%d fade>=%d: %w", t.Delay.Min, t.Fade.Min, ErrInvalidRange)
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"player start columns", p.StartCols},
		{"enemy columns", e.Cols},
		{"enemy rows", e.Rows},
		{"enemy speed", e.Speed},
		{"token columns", t.Cols},
		{"token rows", t.Rows},
		{"token delay", t.Delay},
		{"token fade", t.Fade},
	}
	for _, r := range ranges {
		if err := r.r.Validate(r.name); err != nil {
			return err
		}
	}
	return nil
}
