package termui

import (
	"fmt"
	"strings"
)

// Display holds what the status line shows. It implements game.Display and
// is only touched from the tick goroutine.
type Display struct {
	score      int
	lives      int
	maxLives   int
	gameOver   bool
	finalScore int
}

// NewDisplay returns an empty display.
func NewDisplay() *Display {
	return &Display{}
}

func (d *Display) ShowScore(score int) { d.score = score }

func (d *Display) ShowLives(lives, maxLives int) {
	d.lives, d.maxLives = lives, maxLives
}

func (d *Display) ShowGameOver(finalScore int) {
	d.gameOver = true
	d.finalScore = finalScore
}

// Reset clears the game-over banner before a restart.
func (d *Display) Reset() {
	d.gameOver = false
	d.finalScore = 0
}

// LifeRow is maxLives indicators with the first lives of them lit.
func LifeRow(lives, maxLives int) string {
	lives = max(0, min(lives, maxLives))
	return strings.Repeat("♥", lives) + strings.Repeat("·", maxLives-lives)
}

// Status is the line shown above the field.
func (d *Display) Status() string {
	return fmt.Sprintf("Score: %d  Lives: %s", d.score, LifeRow(d.lives, d.maxLives))
}

// Banner is the game-over message, empty while playing.
func (d *Display) Banner() string {
	if !d.gameOver {
		return ""
	}
	return fmt.Sprintf("GAME OVER  final score %d", d.finalScore)
}
