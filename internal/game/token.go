package game

import (
	"fmt"
	"time"
)

// TokenState is whether a token can be seen and collected yet.
type TokenState int

const (
	TokenDormant TokenState = iota // waiting out its delay, not drawn
	TokenVisible                   // fading out, collectible
)

func (ts TokenState) String() string {
	if ts == TokenVisible {
		return "visible"
	}
	return "dormant"
}

// Token is a timed collectible. It appears after a delay, fades out over its
// fade budget, and respawns when it fades away or is collected.
type Token struct {
	Piece
	Kind   string
	Points int
	Lives  int

	delay      time.Duration // time left before the token appears
	fade       time.Duration // visible time left
	fadeBudget time.Duration // fade at reset, the opacity denominator
}

func newToken(w *World) *Token {
	t := &Token{}
	t.Reset(w)
	return t
}

// Reset draws a new reward, places it on a stone row and rolls independent
// delay and fade timers.
func (t *Token) Reset(w *World) {
	tt := w.settings.Token
	g := w.settings.Grid
	rec := pickToken(w.rng, w.catalogs.Tokens)
	t.Place(rec.SpriteRecord)
	t.Kind = rec.ID
	t.Points = rec.Points
	t.Lives = rec.Lives
	t.delay = time.Duration(tt.Delay.Roll(w.rng)) * tt.Step
	t.fade = time.Duration(tt.Fade.Roll(w.rng)) * tt.Step
	t.fadeBudget = t.fade
	t.MoveTo(
		g.PlaceOnColumn(w.rng, tt.Cols.Min, tt.Cols.Max, t.Width),
		g.PlaceOnRow(w.rng, tt.Rows.Min, tt.Rows.Max, t.Height),
	)
}

// State reports whether the delay has elapsed.
func (t *Token) State() TokenState {
	if t.delay > 0 {
		return TokenDormant
	}
	return TokenVisible
}

// Delay and Fade return the remaining timers.
func (t *Token) Delay() time.Duration { return t.delay }
func (t *Token) Fade() time.Duration  { return t.fade }

// FadeBudget is the visible lifetime the token was given at reset.
func (t *Token) FadeBudget() time.Duration { return t.fadeBudget }

// Opacity is the remaining share of the fade budget, clamped to [0,1].
func (t *Token) Opacity() float64 {
	if t.fadeBudget <= 0 {
		return 0
	}
	a := float64(t.fade) / float64(t.fadeBudget)
	return max(0, min(a, 1))
}

// Update banks the token on the player when a visible token is touched.
func (t *Token) Update(w *World) {
	t.ComputeBoundingBox()
	p := w.player
	if t.State() != TokenVisible || !t.CollidesWith(&p.Piece) {
		return
	}
	p.Bank(t.Points, t.Lives)
	w.emit(Event{Entity: "T", Category: CategoryToken, Key: KeyTokenCollect,
		Value:  fmt.Sprintf("%s +%d points +%d lives banked=%d/%d", t.Kind, t.Points, t.Lives, p.TokenPoints(), p.TokenLives()),
		NumVal: float64(t.Points)})
	t.Reset(w)
}

// Render runs the token's timers by tick and draws it once the delay has
// elapsed, at an opacity that falls linearly to zero. A token whose fade runs
// out respawns instead of drawing.
func (t *Token) Render(w *World, s Surface, tick time.Duration) {
	t.delay -= tick
	if t.delay > 0 {
		return
	}
	t.fade -= tick
	if t.fade <= 0 {
		kind := t.Kind
		t.Reset(w)
		w.emit(Event{Entity: "T", Category: CategoryToken, Key: KeyTokenExpire,
			Value: fmt.Sprintf("%s faded, next %s in %v", kind, t.Kind, t.delay)})
		return
	}
	s.SetAlpha(t.Opacity())
	t.Piece.Render(s)
	s.SetAlpha(1)
}
