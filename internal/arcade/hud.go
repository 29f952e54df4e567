package arcade

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Life indicators are drawn at this scale of the heart sprite.
const lifeIconScale = 0.5

// inactiveLifeAlpha is the opacity of a life indicator that is switched off.
const inactiveLifeAlpha = 0.2

// HUD is the score line, the life indicator row and the game-over banner.
// It implements game.Display.
type HUD struct {
	face       text.Face
	score      int
	lives      int
	maxLives   int
	gameOver   bool
	finalScore int
}

// NewHUD returns a HUD using the 7x13 bitmap font.
func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) ShowScore(score int) { h.score = score }

func (h *HUD) ShowLives(lives, maxLives int) {
	h.lives, h.maxLives = lives, maxLives
}

func (h *HUD) ShowGameOver(finalScore int) {
	h.gameOver = true
	h.finalScore = finalScore
}

// Reset clears the game-over banner.
func (h *HUD) Reset() {
	h.gameOver = false
	h.finalScore = 0
}

// ScoreText is the score line.
func (h *HUD) ScoreText() string { return fmt.Sprintf("Score: %d", h.score) }

// LifeStates lists, for each of the maxLives indicators, whether it is lit.
func (h *HUD) LifeStates() []bool {
	states := make([]bool, h.maxLives)
	for i := range states {
		states[i] = i < h.lives
	}
	return states
}

// GameOver reports whether the banner is showing.
func (h *HUD) GameOver() bool { return h.gameOver }

// Draw renders the HUD. The life row sits at the bottom edge of the field,
// fieldW by fieldH pixels; heart is the life icon.
func (h *HUD) Draw(dst *ebiten.Image, heart *ebiten.Image, fieldW, fieldH int) {
	drawLabel(dst, h.face, h.ScoreText(), 8, 8, color.Black)

	hw := float64(heart.Bounds().Dx()) * lifeIconScale
	hh := float64(heart.Bounds().Dy()) * lifeIconScale
	for i, lit := range h.LifeStates() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(lifeIconScale, lifeIconScale)
		op.GeoM.Translate(8+float64(i)*(hw+4), float64(fieldH)-hh-8)
		if !lit {
			op.ColorScale.ScaleAlpha(inactiveLifeAlpha)
		}
		dst.DrawImage(heart, op)
	}

	if h.gameOver {
		h.drawBanner(dst, fieldW, fieldH)
	}
}

func (h *HUD) drawBanner(dst *ebiten.Image, fieldW, fieldH int) {
	const boxH = 70
	y := float32(fieldH/2 - boxH/2)
	vector.FillRect(dst, 0, y, float32(fieldW), boxH, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	drawCentered(dst, h.face, "GAME OVER", fieldW/2, int(y)+12, color.RGBA{R: 240, G: 60, B: 60, A: 255})
	drawCentered(dst, h.face, fmt.Sprintf("final score %d", h.finalScore), fieldW/2, int(y)+30, color.White)
	drawCentered(dst, h.face, "Enter: play again   C: copy score", fieldW/2, int(y)+48, color.RGBA{R: 180, G: 180, B: 180, A: 255})
}

func drawLabel(dst *ebiten.Image, face text.Face, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

func drawCentered(dst *ebiten.Image, face text.Face, s string, cx, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(y))
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}
