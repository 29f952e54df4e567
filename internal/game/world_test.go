package game

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewWorld_BuildsRoster(t *testing.T) {
	w := newTestWorld(t)
	if len(w.Enemies()) != 6 {
		t.Fatalf("expected 6 enemies, got %d", len(w.Enemies()))
	}
	if w.Player() == nil || w.Token() == nil {
		t.Fatal("player and token must exist")
	}
	if w.Player().Avatar != "char-boy" {
		t.Fatalf("expected char-boy, got %s", w.Player().Avatar)
	}
	if w.Halted() {
		t.Fatal("new world must not be halted")
	}
}

func TestNewWorld_RejectsBadConfiguration(t *testing.T) {
	s := DefaultSettings()
	s.Enemy.Speed = Range{Min: 200, Max: 75}
	if _, err := NewWorld(s); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	s = DefaultSettings()
	s.Player.StartLives = 6
	if _, err := NewWorld(s); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("start lives above the cap must be rejected, got %v", err)
	}

	s = DefaultSettings()
	s.Enemy.Count = 0
	if _, err := NewWorld(s); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("empty roster must be rejected, got %v", err)
	}

	for _, row := range []int{0, -1, DefaultGrid().Rows, DefaultGrid().Rows + 2} {
		s = DefaultSettings()
		s.Player.StartRow = row
		if _, err := NewWorld(s); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("start row %d must be rejected, got %v", row, err)
		}
	}

	c := DefaultCatalogs()
	c.Tokens = nil
	if _, err := NewWorld(DefaultSettings(), WithCatalogs(c)); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestNewWorld_SeedIsDeterministic(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)
	for i := range a.Enemies() {
		ea, eb := a.Enemies()[i], b.Enemies()[i]
		if ea.X != eb.X || ea.Y != eb.Y || ea.Speed != eb.Speed || ea.Sprite != eb.Sprite {
			t.Fatalf("enemy %d differs between identical seeds", i)
		}
	}
}

func TestWorld_InputAppliedAtNextTick(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	y := p.Y
	w.HandleInput(DirUp)
	if p.Y != y {
		t.Fatal("input must not move the player before the next tick")
	}
	w.Update(DefaultTickDT)
	if p.Y != y-83 {
		t.Fatalf("expected one row up after the tick, y %v -> %v", y, p.Y)
	}
	w.Update(DefaultTickDT)
	if p.Y != y-83 {
		t.Fatal("queued input must be applied once")
	}
}

func TestWorld_ConcurrentInput(t *testing.T) {
	w := newTestWorld(t)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(d Direction) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				w.HandleInput(d)
			}
		}([]Direction{DirLeft, DirRight, DirLeft, DirRight}[i])
	}
	for i := 0; i < 20; i++ {
		w.Update(DefaultTickDT)
	}
	wg.Wait()
	w.Update(DefaultTickDT)
	if w.Player().Y != w.Settings().Grid.RowY(5, w.Player().Height) {
		t.Fatal("sideways moves must keep the player on the start row")
	}
}

func TestWorld_GameOverHaltsOnce(t *testing.T) {
	d := &fakeDisplay{}
	w := newTestWorld(t, WithDisplay(d))
	w.Player().CreditLives(-3)

	if w.Update(DefaultTickDT) {
		t.Fatal("expected no progress at zero lives")
	}
	if !w.Halted() {
		t.Fatal("game over must halt the world")
	}
	tick := w.Tick()
	if w.Update(DefaultTickDT) || w.Tick() != tick {
		t.Fatal("halted world must not tick")
	}
	w.HandleInput(DirUp)
	if len(w.pending) != 0 {
		t.Fatal("halted world must drop input")
	}
	if len(d.gameOvers) != 1 {
		t.Fatalf("expected one game over report, got %v", d.gameOvers)
	}
	if n := w.Events().Count(CategorySession, KeySessionHalt); n != 1 {
		t.Fatalf("expected one halt event, got %d", n)
	}
}

func TestWorld_HaltIsIdempotent(t *testing.T) {
	w := newTestWorld(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Halt()
		}()
	}
	wg.Wait()
	w.Halt()
	if n := w.Events().Count(CategorySession, KeySessionHalt); n != 1 {
		t.Fatalf("expected exactly one halt, got %d", n)
	}
}

func TestWorld_HaltFromAnotherGoroutineDuringTicks(t *testing.T) {
	w := newTestWorld(t)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Halt()
	}()
	for i := 0; i < 10000 && w.Update(DefaultTickDT); i++ {
		w.HandleInput(DirLeft)
	}
	<-done
	if !w.Halted() {
		t.Fatal("expected the world to be halted")
	}
	if w.Update(DefaultTickDT) {
		t.Fatal("halted world must not tick")
	}
	halts := w.Events().Filter(CategorySession, KeySessionHalt)
	if len(halts) != 1 {
		t.Fatalf("expected exactly one halt, got %d", len(halts))
	}
	if halts[0].Tick != w.Tick() {
		t.Fatalf("halt stamped tick %d, world stopped at %d", halts[0].Tick, w.Tick())
	}
}

func TestWorld_RestartBuildsFreshPlayer(t *testing.T) {
	w := newTestWorld(t)
	w.Player().CreditScore(9)
	w.Player().CreditLives(-3)
	w.Update(DefaultTickDT)
	if !w.Halted() {
		t.Fatal("expected halt")
	}

	w.Restart("char-pink-girl")

	p := w.Player()
	if w.Halted() || p.State() != PlayerAlive || p.Lives() != 3 || p.Score() != 0 {
		t.Fatalf("restart did not reset the session: %+v", w.Snapshot())
	}
	if p.Avatar != "char-pink-girl" {
		t.Fatalf("expected the new avatar, got %s", p.Avatar)
	}
	if !w.Update(DefaultTickDT) {
		t.Fatal("restarted world must progress")
	}
	w.Player().CreditLives(-3)
	w.Update(DefaultTickDT)
	if n := w.Events().Count(CategorySession, KeySessionHalt); n != 2 {
		t.Fatalf("restarted world must be able to halt again, got %d halts", n)
	}
}

func TestWorld_RenderOrder(t *testing.T) {
	w := newTestWorld(t)
	w.Token().delay = time.Hour
	s := newRecordingSurface()
	w.Render(s, DefaultTickDT)

	want := len(w.Enemies()) + 1
	if len(s.draws) != want {
		t.Fatalf("expected %d draws (dormant token hidden), got %d", want, len(s.draws))
	}
	for i, e := range w.Enemies() {
		if s.draws[i].sprite != e.Sprite || s.draws[i].x != e.X {
			t.Fatalf("draw %d is not enemy %d", i, i)
		}
	}
	if last := s.draws[want-1]; last.sprite != w.Player().Sprite {
		t.Fatalf("player must be drawn after enemies, got %s", last.sprite)
	}

	w.Token().delay = 0
	s = newRecordingSurface()
	w.Render(s, DefaultTickDT)
	if last := s.draws[len(s.draws)-1]; last.sprite != w.Token().Sprite || last.alpha >= 1 {
		t.Fatalf("visible token must be drawn last, faded: %+v", last)
	}
	if s.alpha != 1 {
		t.Fatal("opacity must be restored after the token")
	}
}

func TestWorld_ListenersSeeEveryEvent(t *testing.T) {
	var got []Event
	w := newTestWorld(t, WithListener(ListenerFunc(func(e Event) { got = append(got, e) })))
	w.HandleInput(DirLeft)
	w.HandleInput(DirRight)
	w.Update(DefaultTickDT)
	w.Halt()

	var moves, halts int
	for _, e := range got {
		switch e.Key {
		case KeyPlayerMove:
			moves++
		case KeySessionHalt:
			halts++
		}
	}
	if halts != 1 {
		t.Fatalf("expected halt event, got %v", got)
	}
	if moves == 0 {
		t.Fatal("listeners must receive verbose events")
	}
	if w.Events().Count(CategoryPlayer, KeyPlayerMove) != 0 {
		t.Fatal("non-verbose log must drop move events")
	}
}

func TestWorld_Snapshot(t *testing.T) {
	w := newTestWorld(t)
	w.Player().Bank(8, 1)
	w.Update(DefaultTickDT)
	snap := w.Snapshot()
	if snap.Tick != 1 || snap.Lives != 3 || snap.MaxLives != 5 || snap.TokenPoints != 8 || snap.TokenLives != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.State != PlayerAlive || snap.Halted || snap.Avatar != "char-boy" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
