package arcade

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

// fakeKeys reports each queued key as pressed for exactly one frame.
type fakeKeys struct {
	pressed map[ebiten.Key]bool
}

func (f *fakeKeys) press(k ebiten.Key) { f.pressed[k] = true }

func (f *fakeKeys) JustPressed(k ebiten.Key) bool { return f.pressed[k] }

func (f *fakeKeys) release() { f.pressed = map[ebiten.Key]bool{} }

type testRig struct {
	game   *Game
	world  *game.World
	hud    *HUD
	ticker *Ticker
	keys   *fakeKeys
	copied []string
}

func newRig(t *testing.T, opts ...Option) *testRig {
	t.Helper()
	r := &testRig{hud: NewHUD(), ticker: NewTicker(), keys: &fakeKeys{pressed: map[ebiten.Key]bool{}}}
	w, err := game.NewWorld(game.DefaultSettings(),
		game.WithSeed(3), game.WithDisplay(r.hud), game.WithListener(r.ticker))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	r.world = w
	loader := NewLoader(t.TempDir(), w.Settings().Grid, w.Catalogs(), nil)
	all := append([]Option{
		WithKeys(r.keys),
		WithClipboard(func(s string) error { r.copied = append(r.copied, s); return nil }),
	}, opts...)
	r.game = New(w, r.hud, r.ticker, loader, all...)
	return r
}

func (r *testRig) frame(t *testing.T, keys ...ebiten.Key) {
	t.Helper()
	for _, k := range keys {
		r.keys.press(k)
	}
	if err := r.game.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	r.keys.release()
}

func TestTicker_KeepsNewest(t *testing.T) {
	tk := NewTicker()
	for i := 0; i < tickerMaxEntries+5; i++ {
		tk.HandleEvent(game.Event{Tick: i, Entity: "P", Category: game.CategoryPlayer, Key: game.KeyPlayerCross})
	}
	got := tk.Events()
	if len(got) != tickerMaxEntries {
		t.Fatalf("expected %d entries, got %d", tickerMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != tickerMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", tickerMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestTicker_DropsVerboseEvents(t *testing.T) {
	tk := NewTicker()
	tk.HandleEvent(game.Event{Tick: 1, Entity: "E0", Category: game.CategoryEnemy, Key: game.KeyEnemyExit, Verbose: true})
	tk.HandleEvent(game.Event{Tick: 2, Entity: "E0", Category: game.CategoryEnemy, Key: game.KeyEnemyHit, Value: "lives 3 to 2"})
	got := tk.Events()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if line := tickerLine(got[0]); !strings.Contains(line, "hit lives 3 to 2") {
		t.Fatalf("unexpected line %q", line)
	}
	tk.Clear()
	if len(tk.Events()) != 0 {
		t.Fatal("expected empty ticker after Clear")
	}
}

func TestGame_TokenTimersFollowTicksNotDraws(t *testing.T) {
	r := newRig(t, WithStartPhase(PhasePlay), WithTPS(60))
	r.frame(t)
	r.frame(t)
	if got, want := r.game.renderTick(), 2*(time.Second/60); got != want {
		t.Fatalf("expected %v of tick time after two updates, got %v", want, got)
	}
	if got := r.game.renderTick(); got != 0 {
		t.Fatalf("a second draw without an update must not advance timers, got %v", got)
	}

	r.frame(t, ebiten.KeyC)
	var copies int
	for _, e := range r.ticker.Events() {
		if e.Category == game.CategorySession && e.Key == "copy" {
			copies++
		}
	}
	if copies != 1 {
		t.Fatalf("expected one copy notice in the ticker, got %d", copies)
	}
}

func TestHUD_LifeStates(t *testing.T) {
	h := NewHUD()
	h.ShowLives(2, 5)
	want := []bool{true, true, false, false, false}
	got := h.LifeStates()
	if len(got) != len(want) {
		t.Fatalf("expected %d indicators, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("indicator %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	h.ShowScore(17)
	if h.ScoreText() != "Score: 17" {
		t.Fatalf("unexpected score text %q", h.ScoreText())
	}
}

func TestGame_LayoutIncludesTicker(t *testing.T) {
	r := newRig(t)
	w, h := r.game.Layout(0, 0)
	if w != 505+tickerPanelWidth || h != 606 {
		t.Fatalf("expected %dx606, got %dx%d", 505+tickerPanelWidth, w, h)
	}
}

func TestGame_SelectAvatarStartsPlay(t *testing.T) {
	r := newRig(t)
	if r.game.Phase() != PhaseSelect {
		t.Fatalf("expected select phase, got %s", r.game.Phase())
	}

	// The world does not advance while choosing.
	r.frame(t)
	r.frame(t, ebiten.KeyArrowUp)
	if r.world.Tick() != 0 {
		t.Fatalf("expected no ticks on the select screen, got %d", r.world.Tick())
	}

	r.frame(t, ebiten.Key3)
	if r.game.Phase() != PhasePlay {
		t.Fatalf("expected play phase, got %s", r.game.Phase())
	}
	if got := r.world.Player().Avatar; got != game.DefaultAvatars[2].ID {
		t.Fatalf("expected avatar %s, got %s", game.DefaultAvatars[2].ID, got)
	}
	if r.world.Tick() != 0 {
		t.Fatal("choosing an avatar should not run a tick")
	}
}

func TestGame_ArrowMovesPlayer(t *testing.T) {
	r := newRig(t, WithStartPhase(PhasePlay))
	startY := r.world.Player().Y
	r.frame(t, ebiten.KeyArrowUp)
	want := startY - float64(r.world.Settings().Grid.BlockHeight)
	if got := r.world.Player().Y; got != want {
		t.Fatalf("expected y=%.0f, got %.0f", want, got)
	}
}

func TestGame_GameOverAndRestart(t *testing.T) {
	r := newRig(t, WithStartPhase(PhasePlay))
	p := r.world.Player()
	p.CreditScore(4)
	p.CreditLives(-p.Lives())

	r.frame(t)
	if r.game.Phase() != PhaseOver {
		t.Fatalf("expected over phase, got %s", r.game.Phase())
	}
	if !r.hud.GameOver() {
		t.Fatal("expected game-over banner")
	}

	r.frame(t, ebiten.KeyC)
	if len(r.copied) != 1 || !strings.Contains(r.copied[0], "score 4") {
		t.Fatalf("expected copied summary with score 4, got %v", r.copied)
	}

	r.frame(t, ebiten.KeyEnter)
	if r.game.Phase() != PhaseSelect {
		t.Fatalf("expected select phase, got %s", r.game.Phase())
	}
	r.frame(t, ebiten.KeyEnter)
	if r.game.Phase() != PhasePlay || r.world.Halted() {
		t.Fatal("expected a fresh game after Enter on the select screen")
	}
	if r.hud.GameOver() {
		t.Fatal("expected banner cleared")
	}
	if r.world.Player().Score() != 0 || r.world.Player().Lives() != 3 {
		t.Fatalf("expected fresh player, got score=%d lives=%d", r.world.Player().Score(), r.world.Player().Lives())
	}
}

func TestGame_ClipboardFailureIsLogged(t *testing.T) {
	r := newRig(t, WithStartPhase(PhasePlay), WithClipboard(func(string) error { return errors.New("no display") }))
	r.frame(t, ebiten.KeyC)
	if r.game.copied != "" {
		t.Fatal("expected nothing recorded when the clipboard fails")
	}
}

func TestGame_EscapeTerminates(t *testing.T) {
	r := newRig(t)
	r.keys.press(ebiten.KeyEscape)
	if err := r.game.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected ebiten.Termination, got %v", err)
	}
}

func TestLoader_PathAndRowTiles(t *testing.T) {
	g := game.DefaultGrid()
	l := NewLoader("assets", g, game.DefaultCatalogs(), nil)
	if got := l.Path("images/Gem Blue.png"); !strings.HasSuffix(got, "Gem Blue.png") || !strings.HasPrefix(got, "assets") {
		t.Fatalf("unexpected path %q", got)
	}
	want := []string{tileWater, tileStone, tileStone, tileStone, tileGrass, tileGrass}
	for row, w := range want {
		if got := rowTile(g, row); got != w {
			t.Errorf("row %d: expected %s, got %s", row, w, got)
		}
	}
}
