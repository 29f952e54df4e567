// Package arcade is the windowed frontend built on ebiten.
package arcade

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

// bottomMargin is the strip below the last row where the tiles overhang and
// the life indicators sit.
const bottomMargin = 58

// Phase is which screen the arcade is on.
type Phase int

const (
	PhaseSelect Phase = iota // choosing an avatar
	PhasePlay
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhasePlay:
		return "play"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// KeySource reports edge-triggered key presses.
type KeySource interface {
	JustPressed(k ebiten.Key) bool
}

type inputKeys struct{}

func (inputKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

var avatarKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var moveKeys = map[ebiten.Key]game.Direction{
	ebiten.KeyArrowUp:    game.DirUp,
	ebiten.KeyArrowDown:  game.DirDown,
	ebiten.KeyArrowLeft:  game.DirLeft,
	ebiten.KeyArrowRight: game.DirRight,
}

// Game implements ebiten.Game over a World. The world must have been built
// with the Game's HUD as its display and the ticker as a listener; see
// NewHUD and NewTicker.
type Game struct {
	world  *game.World
	hud    *HUD
	ticker *Ticker
	loader *Loader
	keys   KeySource
	clip   func(string) error
	logger *log.Logger

	phase   Phase
	tickDT  time.Duration
	// Tick time run since the last Draw. The token timers are advanced by
	// it so they follow TPS, not the display refresh rate.
	undrawn time.Duration
	width   int
	height  int
	fieldW  int
	fieldH  int
	copied  string // last summary put on the clipboard
}

// Option configures a Game.
type Option func(*Game)

// WithKeys replaces the keyboard.
func WithKeys(k KeySource) Option {
	return func(g *Game) { g.keys = k }
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(g *Game) { g.clip = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTPS sets the tick rate the world is advanced at.
func WithTPS(tps int) Option {
	return func(g *Game) {
		if tps > 0 {
			g.tickDT = time.Second / time.Duration(tps)
		}
	}
}

// WithStartPhase skips the avatar selection screen when p is PhasePlay.
func WithStartPhase(p Phase) Option {
	return func(g *Game) { g.phase = p }
}

// New builds the arcade frontend.
func New(w *game.World, hud *HUD, ticker *Ticker, loader *Loader, opts ...Option) *Game {
	grid := w.Settings().Grid
	g := &Game{
		world:  w,
		hud:    hud,
		ticker: ticker,
		loader: loader,
		keys:   inputKeys{},
		clip:   clipboard.WriteAll,
		logger: log.New(io.Discard),
		phase:  PhaseSelect,
		tickDT: game.DefaultTickDT,
		fieldW: grid.Width(),
		fieldH: grid.Height() + bottomMargin,
	}
	for _, o := range opts {
		o(g)
	}
	g.width = g.fieldW + tickerPanelWidth
	g.height = g.fieldH
	return g
}

// Phase returns the current screen.
func (g *Game) Phase() Phase { return g.phase }

// Size is the logical screen size.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Update advances one frame. Escape ends the program.
func (g *Game) Update() error {
	if g.keys.JustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch g.phase {
	case PhaseSelect:
		g.updateSelect()
	case PhasePlay:
		g.updatePlay()
	case PhaseOver:
		g.updateOver()
	}
	return nil
}

func (g *Game) updateSelect() {
	avatars := g.world.Catalogs().Avatars
	for i, k := range avatarKeys {
		if i < len(avatars) && g.keys.JustPressed(k) {
			g.start(avatars[i].ID)
			return
		}
	}
	if g.keys.JustPressed(ebiten.KeyEnter) {
		g.start("")
	}
}

func (g *Game) start(avatarID string) {
	g.hud.Reset()
	g.ticker.Clear()
	g.world.Restart(avatarID)
	g.undrawn = 0
	g.phase = PhasePlay
	g.logger.Info("game started", "avatar", g.world.Player().Avatar)
}

func (g *Game) updatePlay() {
	for k, d := range moveKeys {
		if g.keys.JustPressed(k) {
			g.world.HandleInput(d)
		}
	}
	if g.keys.JustPressed(ebiten.KeyC) {
		g.copySummary()
	}
	if g.world.Update(g.tickDT) {
		g.undrawn += g.tickDT
	} else {
		g.phase = PhaseOver
		g.logger.Info("game over", "score", g.world.Player().Score(), "tick", g.world.Tick())
	}
}

func (g *Game) updateOver() {
	if g.keys.JustPressed(ebiten.KeyC) {
		g.copySummary()
	}
	if g.keys.JustPressed(ebiten.KeyEnter) {
		g.phase = PhaseSelect
	}
}

// Summary is the one-line result copied with C.
func (g *Game) Summary() string {
	s := g.world.Snapshot()
	return fmt.Sprintf("Gem Crossing: score %d, lives %d/%d, avatar %s, %s after %d ticks",
		s.Score, s.Lives, s.MaxLives, s.Avatar, s.State, s.Tick)
}

func (g *Game) copySummary() {
	sum := g.Summary()
	if err := g.clip(sum); err != nil {
		g.logger.Warn("clipboard unavailable", "err", err)
		return
	}
	g.copied = sum
	g.ticker.HandleEvent(game.Event{Tick: g.world.Tick(), Entity: "--",
		Category: game.CategorySession, Key: "copy", Value: "score to clipboard"})
}

// renderTick hands the tick time run since the previous call to Render.
func (g *Game) renderTick() time.Duration {
	d := g.undrawn
	g.undrawn = 0
	return d
}

// Draw renders the field, the pieces, the HUD and the event ticker.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 24, A: 255})
	g.drawField(screen)

	surface := newScreenSurface(screen, g.loader)
	switch g.phase {
	case PhaseSelect:
		g.drawSelect(screen, surface)
	default:
		g.world.Render(surface, g.renderTick())
		g.hud.Draw(screen, g.lifeIcon(), g.fieldW, g.fieldH)
	}
	g.ticker.Draw(screen, g.hud.face, g.fieldW, g.height)
}

func (g *Game) drawField(screen *ebiten.Image) {
	grid := g.world.Settings().Grid
	for row := 0; row < grid.Rows; row++ {
		tile := g.loader.Image(rowTile(grid, row))
		for col := 0; col < grid.Columns; col++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(grid.Left+col*grid.BlockWidth), float64(row*grid.BlockHeight))
			screen.DrawImage(tile, op)
		}
	}
}

// drawSelect lays the avatars out along the start row with their keys.
func (g *Game) drawSelect(screen *ebiten.Image, s *screenSurface) {
	grid := g.world.Settings().Grid
	row := g.world.Settings().Player.StartRow
	avatars := g.world.Catalogs().Avatars
	for i, a := range avatars {
		col := i % grid.Columns
		s.DrawImage(a.Sprite, grid.ColumnX(col, a.Width), grid.RowY(row, a.Height))
		if i < len(avatarKeys) {
			drawCentered(screen, g.hud.face, fmt.Sprintf("%d", i+1), grid.Left+col*grid.BlockWidth+grid.BlockWidth/2, g.fieldH-24, color.White)
		}
	}
	prompt := fmt.Sprintf("Choose your avatar: 1-%d, Enter for random", min(len(avatars), len(avatarKeys)))
	drawCentered(screen, g.hud.face, prompt, g.fieldW/2, grid.TopOffset+grid.BlockHeight+20, color.White)
	drawCentered(screen, g.hud.face, "Arrows move. Cross the stones to score.", g.fieldW/2, grid.TopOffset+grid.BlockHeight+40, color.White)
}

// lifeIcon is the heart sprite when the catalog has one.
func (g *Game) lifeIcon() *ebiten.Image {
	for _, t := range g.world.Catalogs().Tokens {
		if t.Lives > 0 {
			return g.loader.Image(t.Sprite)
		}
	}
	return g.loader.Image(game.DefaultTokens[len(game.DefaultTokens)-1].Sprite)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
