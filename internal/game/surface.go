package game

// Surface is the rendering target the pieces draw on. Sprites are opaque keys
// resolved by the surface's own resource loader.
type Surface interface {
	// SetAlpha sets the opacity in [0,1] applied to subsequent draws.
	SetAlpha(alpha float64)
	DrawImage(sprite string, x, y float64)
}

// Display receives the score and lives the player should see.
type Display interface {
	ShowScore(score int)
	// ShowLives toggles a fixed row of maxLives indicators, lives of them active.
	ShowLives(lives, maxLives int)
	ShowGameOver(finalScore int)
}

// nopDisplay is used when no Display is wired.
type nopDisplay struct{}

func (nopDisplay) ShowScore(int)      {}
func (nopDisplay) ShowLives(int, int) {}
func (nopDisplay) ShowGameOver(int)   {}
