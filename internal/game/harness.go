package game

import (
	"math/rand"
	"time"
)

// DefaultTickDT is one frame at 60 ticks per second.
const DefaultTickDT = time.Second / 60

// Pilot chooses the player's next move in a headless session.
// DirNone means stay put.
type Pilot interface {
	Next(w *World) Direction
}

// PilotFunc adapts a function to Pilot.
type PilotFunc func(w *World) Direction

// Next calls f(w).
func (f PilotFunc) Next(w *World) Direction { return f(w) }

// CautiousPilot steps up whenever the cell above will stay clear for the
// look-ahead window and otherwise waits.
type CautiousPilot struct {
	Lookahead time.Duration
}

// Next returns DirUp when it is safe to advance.
func (cp CautiousPilot) Next(w *World) Direction {
	p := w.player
	g := w.settings.Grid
	look := cp.Lookahead
	if look <= 0 {
		look = 600 * time.Millisecond
	}
	target := BoundingBox{
		Top:    p.Y - float64(g.BlockHeight),
		Left:   p.X,
		Bottom: p.Y - float64(g.BlockHeight) + p.Height,
		Right:  p.X + p.Width,
	}
	for _, e := range w.enemies {
		// Sweep of the enemy over the window, widened by its own width.
		sweep := BoundingBox{
			Top:    e.Y,
			Left:   e.X - e.Width,
			Bottom: e.Y + e.Height,
			Right:  e.X + e.Width + float64(e.Speed)*look.Seconds(),
		}
		if Overlaps(&target, &sweep) {
			return DirNone
		}
	}
	return DirUp
}

// RandomPilot wanders, biased towards the safe zone.
type RandomPilot struct {
	Rng *rand.Rand
}

// Next returns a random direction, up half of the time.
func (rp RandomPilot) Next(_ *World) Direction {
	switch RandomInteger(rp.Rng, 0, 5) {
	case 0, 1, 2:
		return DirUp
	case 3:
		return DirLeft
	case 4:
		return DirRight
	default:
		return DirDown
	}
}

// Harness is a headless session driver used by tests and the report
// binary. It mirrors the frontends' tick loop without any rendering backend.
type Harness struct {
	World     *World
	Log       *EventLog
	Pilot     Pilot
	MoveEvery int // ticks between pilot decisions
	TickDT    time.Duration

	settings Settings
	seed     int64
	opts     []Option
	verbose  bool
}

// HarnessOption is a builder function applied to a Harness during construction.
type HarnessOption func(*Harness)

// WithHarnessSeed sets the session seed.
func WithHarnessSeed(seed int64) HarnessOption {
	return func(h *Harness) { h.seed = seed }
}

// WithSettings replaces the default tuning.
func WithSettings(s Settings) HarnessOption {
	return func(h *Harness) { h.settings = s }
}

// WithPilot sets who plays.
func WithPilot(p Pilot) HarnessOption {
	return func(h *Harness) { h.Pilot = p }
}

// WithMoveEvery sets the ticks between pilot decisions.
func WithMoveEvery(n int) HarnessOption {
	return func(h *Harness) {
		if n > 0 {
			h.MoveEvery = n
		}
	}
}

// WithVerbose keeps high-frequency events in the log.
func WithVerbose(v bool) HarnessOption {
	return func(h *Harness) { h.verbose = v }
}

// WithWorldOptions forwards options to NewWorld.
func WithWorldOptions(opts ...Option) HarnessOption {
	return func(h *Harness) { h.opts = append(h.opts, opts...) }
}

// NewHarness builds a seeded world. The default pilot never moves.
func NewHarness(opts ...HarnessOption) (*Harness, error) {
	h := &Harness{
		MoveEvery: 10,
		TickDT:    DefaultTickDT,
		settings:  DefaultSettings(),
		seed:      1,
		Pilot:     PilotFunc(func(*World) Direction { return DirNone }),
	}
	for _, o := range opts {
		o(h)
	}
	h.Log = NewEventLog(h.verbose)
	worldOpts := append([]Option{WithSeed(h.seed), WithEventLog(h.Log)}, h.opts...)
	w, err := NewWorld(h.settings, worldOpts...)
	if err != nil {
		return nil, err
	}
	h.World = w
	return h, nil
}

// Step runs one tick and returns the world's progress signal.
func (h *Harness) Step() bool {
	w := h.World
	if h.MoveEvery > 0 && (w.Tick()+1)%h.MoveEvery == 0 {
		w.HandleInput(h.Pilot.Next(w))
	}
	ok := w.Update(h.TickDT)
	w.Render(discardSurface{}, h.TickDT)
	return ok
}

// RunTicks advances up to n ticks, stopping early on game over. It returns
// the number of ticks run.
func (h *Harness) RunTicks(n int) int {
	for i := 0; i < n; i++ {
		if !h.Step() {
			return i + 1
		}
	}
	return n
}

// RunUntil advances until predicate returns true or maxTicks have run.
// It returns the world tick at which the predicate held, or -1.
func (h *Harness) RunUntil(predicate func(*Harness) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		h.Step()
		if predicate(h) {
			return h.World.Tick()
		}
	}
	return -1
}

// Summary counts the notable events of a run.
type Summary struct {
	Ticks     int
	Score     int
	Lives     int
	Crossings int
	Hits      int
	Collected int
	Expired   int
	GameOver  bool
}

// Summary returns the counts recorded so far.
func (h *Harness) Summary() Summary {
	snap := h.World.Snapshot()
	return Summary{
		Ticks:     snap.Tick,
		Score:     snap.Score,
		Lives:     snap.Lives,
		Crossings: h.Log.Count(CategoryPlayer, KeyPlayerCross),
		Hits:      h.Log.Count(CategoryEnemy, KeyEnemyHit),
		Collected: h.Log.Count(CategoryToken, KeyTokenCollect),
		Expired:   h.Log.Count(CategoryToken, KeyTokenExpire),
		GameOver:  snap.State == PlayerGameOver,
	}
}

// discardSurface drops every draw.
type discardSurface struct{}

func (discardSurface) SetAlpha(float64)                   {}
func (discardSurface) DrawImage(string, float64, float64) {}
