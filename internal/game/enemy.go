package game

import (
	"fmt"
	"time"
)

// Enemy crosses the field west to east. It never dies: leaving the field or
// hitting the player re-rolls its sprite, lane and speed.
type Enemy struct {
	Piece
	Label string
	Speed int // pixels per second
}

func newEnemy(w *World, index int) *Enemy {
	e := &Enemy{Label: fmt.Sprintf("E%d", index)}
	e.Reset(w)
	return e
}

// Reset places the enemy off-field to the west on a random lane with a fresh
// sprite and speed.
func (e *Enemy) Reset(w *World) {
	t := w.settings.Enemy
	g := w.settings.Grid
	e.Place(pickSprite(w.rng, w.catalogs.Enemies))
	e.X = g.PlaceOnColumn(w.rng, t.Cols.Min, t.Cols.Max, e.Width)
	e.Y = g.PlaceOnRow(w.rng, t.Rows.Min, t.Rows.Max, e.Height)
	e.Speed = t.Speed.Roll(w.rng)
	e.ComputeBoundingBox()
}

// Update advances the enemy by dt, then resets it if it walked off the east
// edge, then checks it against the player. The exit check always runs first.
func (e *Enemy) Update(w *World, dt time.Duration) {
	g := w.settings.Grid
	e.X += float64(e.Speed) * dt.Seconds()
	// Small up-and-down jiggle.
	e.Y += float64(RandomInteger(w.rng, -1, 1)) / w.settings.Enemy.Jitter
	e.ComputeBoundingBox()

	if e.X > float64(g.Right+g.BlockWidth) {
		e.Reset(w)
		w.emit(Event{Entity: e.Label, Category: CategoryEnemy, Key: KeyEnemyExit,
			Value: fmt.Sprintf("respawn speed=%d y=%.0f", e.Speed, e.Y), NumVal: float64(e.Speed), Verbose: true})
	}

	p := w.player
	if p.State() == PlayerGameOver {
		return
	}
	if e.CollidesWith(&p.Piece) {
		before := p.Lives()
		p.CreditLives(-1)
		p.Reset(w)
		w.emit(Event{Entity: e.Label, Category: CategoryEnemy, Key: KeyEnemyHit,
			Value: fmt.Sprintf("lives %d → %d", before, p.Lives()), NumVal: float64(p.Lives())})
	}
}
