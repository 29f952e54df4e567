package game

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// World is one game session: the enemy roster, the player and the token,
// plus the RNG and collaborators they share. Update, Render and Restart must
// be called from a single goroutine. HandleInput and Halt are safe from any
// goroutine; Halt waits for a running tick to finish before it emits.
type World struct {
	settings Settings
	catalogs Catalogs
	rng      *rand.Rand

	enemies []*Enemy
	player  *Player
	token   *Token

	display   Display
	listeners []Listener
	events    *EventLog
	logger    *log.Logger

	avatar string
	tick   int

	// step serializes Update, Render, Restart and Halt. Take it before mu.
	step sync.Mutex

	mu      sync.Mutex
	pending []Direction
	halted  bool
}

// Option configures a World at construction.
type Option func(*World)

// WithSeed seeds the session RNG for deterministic runs.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	}
}

// WithAvatar picks the player's avatar by id. Unknown ids fall back to random.
func WithAvatar(id string) Option {
	return func(w *World) { w.avatar = id }
}

// WithCatalogs replaces the built-in avatar, enemy and token catalogs.
func WithCatalogs(c Catalogs) Option {
	return func(w *World) { w.catalogs = c }
}

// WithDisplay wires the score and lives display.
func WithDisplay(d Display) Option {
	return func(w *World) {
		if d != nil {
			w.display = d
		}
	}
}

// WithListener adds an event listener. Listeners run in registration order.
func WithListener(l Listener) Option {
	return func(w *World) {
		if l != nil {
			w.listeners = append(w.listeners, l)
		}
	}
}

// WithEventLog replaces the session's own event log.
func WithEventLog(l *EventLog) Option {
	return func(w *World) {
		if l != nil {
			w.events = l
		}
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld validates s and the catalogs and builds a session ready for its
// first tick. Configuration errors are returned, never patched over.
func NewWorld(s Settings, opts ...Option) (*World, error) {
	w := &World{
		settings: s,
		catalogs: DefaultCatalogs(),
		display:  nopDisplay{},
		events:   NewEventLog(false),
		logger:   log.New(io.Discard),
	}
	for _, o := range opts {
		o(w)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	if err := w.catalogs.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay only
	}

	w.enemies = make([]*Enemy, s.Enemy.Count)
	for i := range w.enemies {
		w.enemies[i] = newEnemy(w, i)
	}
	w.player = newPlayer(w, w.avatar)
	w.token = newToken(w)
	w.logger.Debug("world ready", "enemies", len(w.enemies), "avatar", w.player.Avatar)
	return w, nil
}

func (w *World) Settings() Settings { return w.settings }
func (w *World) Catalogs() Catalogs { return w.catalogs }
func (w *World) Player() *Player    { return w.player }
func (w *World) Enemies() []*Enemy  { return w.enemies }
func (w *World) Token() *Token      { return w.token }
func (w *World) Events() *EventLog  { return w.events }
func (w *World) Tick() int          { return w.tick }

// HandleInput queues a move for the start of the next tick so a move can
// never land between two collision checks of the same tick.
func (w *World) HandleInput(d Direction) {
	if d == DirNone {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.halted {
		return
	}
	w.pending = append(w.pending, d)
}

func (w *World) drainInput() []Direction {
	w.mu.Lock()
	defer w.mu.Unlock()
	moves := w.pending
	w.pending = nil
	return moves
}

// Update runs one tick: queued moves, every enemy, the player, then the token.
// It returns false once the game is over; the world is halted at that point.
func (w *World) Update(dt time.Duration) bool {
	w.step.Lock()
	defer w.step.Unlock()
	if w.Halted() {
		return false
	}
	w.tick++

	for _, d := range w.drainInput() {
		if w.player.HandleInput(w.settings.Grid, d) {
			w.emit(Event{Entity: "P", Category: CategoryPlayer, Key: KeyPlayerMove,
				Value: fmt.Sprintf("%s to %.0f,%.0f", d, w.player.X, w.player.Y), Verbose: true})
		}
	}

	for _, e := range w.enemies {
		e.Update(w, dt)
	}
	if !w.player.Update(w) {
		w.halt()
		return false
	}
	w.token.Update(w)
	return true
}

// Render draws all enemies, the player and the token, in that order. tick is
// the interval the token's timers advance by. A halted world is drawn as it
// stood, without advancing the token.
func (w *World) Render(s Surface, tick time.Duration) {
	w.step.Lock()
	defer w.step.Unlock()
	for _, e := range w.enemies {
		e.Render(s)
	}
	w.player.Render(s)
	if w.Halted() {
		if w.token.State() == TokenVisible {
			s.SetAlpha(w.token.Opacity())
			w.token.Piece.Render(s)
			s.SetAlpha(1)
		}
		return
	}
	w.token.Render(w, s, tick)
}

// Halt stops the session. Only the first call after NewWorld or Restart has
// any effect.
func (w *World) Halt() {
	w.step.Lock()
	defer w.step.Unlock()
	w.halt()
}

// halt requires w.step.
func (w *World) halt() {
	w.mu.Lock()
	if w.halted {
		w.mu.Unlock()
		return
	}
	w.halted = true
	w.pending = nil
	w.mu.Unlock()

	score := w.player.Score()
	w.emit(Event{Entity: "--", Category: CategorySession, Key: KeySessionHalt,
		Value: fmt.Sprintf("score %d", score), NumVal: float64(score)})
	w.logger.Info("session halted", "tick", w.tick, "score", score)
}

// Halted reports whether Halt has run.
func (w *World) Halted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.halted
}

// Restart replaces the player with a fresh one and re-rolls every enemy and
// the token. avatarID follows the same rules as WithAvatar. Call it from the
// tick goroutine.
func (w *World) Restart(avatarID string) {
	w.step.Lock()
	defer w.step.Unlock()
	w.mu.Lock()
	w.halted = false
	w.pending = nil
	w.mu.Unlock()

	w.avatar = avatarID
	for _, e := range w.enemies {
		e.Reset(w)
	}
	w.player = newPlayer(w, avatarID)
	w.token.Reset(w)
	w.emit(Event{Entity: "--", Category: CategorySession, Key: KeySessionRestart, Value: "avatar " + w.player.Avatar})
	w.logger.Info("session restarted", "avatar", w.player.Avatar)
}

func (w *World) emit(e Event) {
	e.Tick = w.tick
	w.events.HandleEvent(e)
	for _, l := range w.listeners {
		l.HandleEvent(e)
	}
}

// Snapshot is a read-only view of the session for frontends and reports.
type Snapshot struct {
	Tick        int
	Avatar      string
	Score       int
	Lives       int
	MaxLives    int
	TokenPoints int
	TokenLives  int
	State       PlayerState
	TokenState  TokenState
	Halted      bool
}

// Snapshot captures the current session state.
func (w *World) Snapshot() Snapshot {
	p := w.player
	return Snapshot{
		Tick:        w.tick,
		Avatar:      p.Avatar,
		Score:       p.Score(),
		Lives:       p.Lives(),
		MaxLives:    p.MaxLives(),
		TokenPoints: p.TokenPoints(),
		TokenLives:  p.TokenLives(),
		State:       p.State(),
		TokenState:  w.token.State(),
		Halted:      w.Halted(),
	}
}
