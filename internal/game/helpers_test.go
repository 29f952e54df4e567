package game

import (
	"math/rand"
	"testing"
)

// drawCall is one DrawImage captured by recordingSurface, with the alpha in
// effect at the time.
type drawCall struct {
	sprite string
	x, y   float64
	alpha  float64
}

type recordingSurface struct {
	alpha  float64
	draws  []drawCall
	alphas []float64 // every SetAlpha value, in order
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{alpha: 1}
}

func (r *recordingSurface) SetAlpha(a float64) {
	r.alpha = a
	r.alphas = append(r.alphas, a)
}

func (r *recordingSurface) DrawImage(sprite string, x, y float64) {
	r.draws = append(r.draws, drawCall{sprite: sprite, x: x, y: y, alpha: r.alpha})
}

type fakeDisplay struct {
	score     int
	lives     int
	maxLives  int
	gameOvers []int
}

func (d *fakeDisplay) ShowScore(score int)           { d.score = score }
func (d *fakeDisplay) ShowLives(lives, maxLives int) { d.lives, d.maxLives = lives, maxLives }
func (d *fakeDisplay) ShowGameOver(finalScore int)   { d.gameOvers = append(d.gameOvers, finalScore) }

func newTestWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	w, err := NewWorld(DefaultSettings(), append([]Option{WithSeed(42), WithAvatar("char-boy")}, opts...)...)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func testRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- test only
}
