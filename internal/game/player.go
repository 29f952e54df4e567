package game

import "fmt"

// PlayerState is the player's lifecycle state.
type PlayerState int

const (
	PlayerAlive    PlayerState = iota
	PlayerGameOver             // terminal; only a restart builds a new player
)

func (ps PlayerState) String() string {
	switch ps {
	case PlayerAlive:
		return "alive"
	case PlayerGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player is the user-controlled piece. Token rewards collected during a
// crossing are banked and only credited when the player reaches the safe zone.
type Player struct {
	Piece
	Avatar string

	score       int
	lives       int
	maxLives    int
	tokenPoints int
	tokenLives  int
	state       PlayerState
	display     Display
}

// newPlayer builds a player with the avatar named by avatarID, or a random
// avatar when avatarID is empty or unknown.
func newPlayer(w *World, avatarID string) *Player {
	rec, ok := w.catalogs.FindAvatar(avatarID)
	if !ok {
		if avatarID != "" {
			w.logger.Warn("unknown avatar, picking one at random", "avatar", avatarID)
		}
		rec = pickSprite(w.rng, w.catalogs.Avatars)
	}
	p := &Player{
		Avatar:   rec.ID,
		lives:    w.settings.Player.StartLives,
		maxLives: w.settings.Player.MaxLives,
		display:  w.display,
	}
	p.Place(rec)
	p.display.ShowScore(p.score)
	p.display.ShowLives(p.lives, p.maxLives)
	p.Reset(w)
	return p
}

// Score, Lives and the banked accumulators are read-only outside the package.
func (p *Player) Score() int         { return p.score }
func (p *Player) Lives() int         { return p.lives }
func (p *Player) MaxLives() int      { return p.maxLives }
func (p *Player) TokenPoints() int   { return p.tokenPoints }
func (p *Player) TokenLives() int    { return p.tokenLives }
func (p *Player) State() PlayerState { return p.state }

// Reset puts the player back on a random column of the starting row and
// drops whatever was banked during the attempt.
func (p *Player) Reset(w *World) {
	t := w.settings.Player
	g := w.settings.Grid
	p.MoveTo(
		g.PlaceOnColumn(w.rng, t.StartCols.Min, t.StartCols.Max, p.Width),
		g.RowY(t.StartRow, p.Height),
	)
	p.tokenPoints = 0
	p.tokenLives = 0
}

// Update settles the player for this tick. It returns false once the player is
// out of lives; a game-over player is never moved or reset again.
func (p *Player) Update(w *World) bool {
	if p.state == PlayerGameOver {
		return false
	}
	if p.lives < 1 {
		p.state = PlayerGameOver
		p.display.ShowGameOver(p.score)
		w.emit(Event{Entity: "P", Category: CategoryPlayer, Key: KeyPlayerGameOver,
			Value: fmt.Sprintf("final score %d", p.score), NumVal: float64(p.score)})
		return false
	}
	if p.Y < w.settings.Grid.Top() {
		points, lives := 1+p.tokenPoints, p.tokenLives
		p.CreditScore(points)
		p.CreditLives(lives)
		w.emit(Event{Entity: "P", Category: CategoryPlayer, Key: KeyPlayerCross,
			Value: fmt.Sprintf("+%d points +%d lives score=%d", points, lives, p.score), NumVal: float64(points)})
		p.Reset(w)
	}
	p.ComputeBoundingBox()
	return true
}

// HandleInput moves one cell in d unless the move would leave the field.
// It reports whether the player moved.
func (p *Player) HandleInput(g Grid, d Direction) bool {
	if p.state == PlayerGameOver {
		return false
	}
	bw, bh := float64(g.BlockWidth), float64(g.BlockHeight)
	x, y := p.X, p.Y
	switch d {
	case DirUp:
		if y > g.Top() {
			y -= bh
		}
	case DirDown:
		if y < float64(g.Bottom) {
			y += bh
		}
	case DirLeft:
		if x-bw > float64(g.Left) {
			x -= bw
		}
	case DirRight:
		if x < float64(g.Right) {
			x += bw
		}
	}
	if x == p.X && y == p.Y {
		return false
	}
	p.MoveTo(x, y)
	return true
}

// CreditLives adds delta, which may be negative, capping at MaxLives.
func (p *Player) CreditLives(delta int) {
	p.lives = min(p.lives+delta, p.maxLives)
	p.display.ShowLives(max(p.lives, 0), p.maxLives)
}

// CreditScore adds delta to the score.
func (p *Player) CreditScore(delta int) {
	p.score += delta
	p.display.ShowScore(p.score)
}

// Bank holds a token reward until the next successful crossing.
func (p *Player) Bank(points, lives int) {
	p.tokenPoints += points
	p.tokenLives += lives
}
