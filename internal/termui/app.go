package termui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

// Screen rows used above the field.
const (
	statusRow = 0
	fieldRow  = 2
)

// App runs a World on a terminal screen. The world must have been built
// with the App's Display wired in.
type App struct {
	screen  tcell.Screen
	world   *game.World
	display *Display
	canvas  *Canvas
	logger  *log.Logger
	tps     int
	last    string // most recent non-verbose event
}

// AppOption configures an App.
type AppOption func(*App)

// WithTPS sets the tick rate.
func WithTPS(tps int) AppOption {
	return func(a *App) {
		if tps > 0 {
			a.tps = tps
		}
	}
}

// WithAppLogger sets the logger.
func WithAppLogger(l *log.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// New builds an App drawing w on s.
func New(s tcell.Screen, w *game.World, d *Display, opts ...AppOption) *App {
	a := &App{
		screen:  s,
		world:   w,
		display: d,
		canvas:  NewCanvas(s, w.Settings().Grid, w.Catalogs(), 0, fieldRow),
		logger:  log.New(io.Discard),
		tps:     60,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// HandleEvent records the latest event for the footer. Register the App as a
// world listener to use it.
func (a *App) HandleEvent(e game.Event) {
	if e.Verbose {
		return
	}
	a.last = e.String()
}

// Run ticks the world until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	interval := time.Second / time.Duration(a.tps)
	tick := time.NewTicker(interval)
	defer tick.Stop()

	a.logger.Info("terminal session started", "tps", a.tps)
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.HandleTermEvent(ev) {
				a.logger.Info("terminal session ended", "score", a.world.Player().Score())
				return nil
			}
		case <-tick.C:
			a.Step(interval)
		}
	}
}

// Step advances the world one tick and redraws, running the token timers
// by dt.
func (a *App) Step(dt time.Duration) {
	a.world.Update(dt)
	a.render(dt)
}

// HandleTermEvent applies one terminal event. It reports whether the user
// asked to quit.
func (a *App) HandleTermEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if isQuit(e) {
			return true
		}
		a.handleKey(e)
	}
	return false
}

func isQuit(e *tcell.EventKey) bool {
	if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
		return true
	}
	r := e.Rune()
	return e.Key() == tcell.KeyRune && (r == 'q' || r == 'Q')
}

func (a *App) handleKey(e *tcell.EventKey) {
	if a.world.Halted() {
		a.handleGameOverKey(e)
		return
	}
	switch e.Key() {
	case tcell.KeyUp:
		a.world.HandleInput(game.DirUp)
	case tcell.KeyDown:
		a.world.HandleInput(game.DirDown)
	case tcell.KeyLeft:
		a.world.HandleInput(game.DirLeft)
	case tcell.KeyRight:
		a.world.HandleInput(game.DirRight)
	}
}

// On the game-over screen Enter restarts with a random avatar and 1-9 picks
// an avatar from the catalog.
func (a *App) handleGameOverKey(e *tcell.EventKey) {
	avatars := a.world.Catalogs().Avatars
	switch {
	case e.Key() == tcell.KeyEnter:
		a.restart("")
	case e.Key() == tcell.KeyRune && e.Rune() >= '1' && e.Rune() <= '9':
		i := int(e.Rune() - '1')
		if i < len(avatars) {
			a.restart(avatars[i].ID)
		}
	}
}

func (a *App) restart(avatarID string) {
	a.display.Reset()
	a.world.Restart(avatarID)
	a.Draw()
}

// Draw redraws the status line, the field and the footer without advancing
// any timer.
func (a *App) Draw() { a.render(0) }

func (a *App) render(tick time.Duration) {
	s := a.screen
	s.Clear()
	cols := a.canvas.Cols()

	drawText(s, 0, statusRow, padRight(a.display.Status(), cols), tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	a.canvas.DrawField()
	a.canvas.SetAlpha(1)
	a.world.Render(a.canvas, tick)

	footer := fieldRow + a.canvas.Rows() + 1
	if banner := a.display.Banner(); banner != "" {
		drawText(s, 0, footer, banner, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		drawText(s, 0, footer+1, a.avatarHint(), tcell.StyleDefault.Foreground(tcell.ColorSilver))
	} else {
		drawText(s, 0, footer, "arrows move  q quit", tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}
	if a.last != "" {
		drawText(s, 0, footer+2, a.last, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	s.Show()
}

func (a *App) avatarHint() string {
	n := min(len(a.world.Catalogs().Avatars), 9)
	return fmt.Sprintf("Enter: play again  1-%d: choose avatar  q: quit", n)
}
