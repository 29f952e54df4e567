// Package termui is the terminal frontend: it draws a World on a tcell
// screen and feeds it arrow-key input.
package termui

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

// Each block of the field is drawn as cellsX by cellsY terminal cells.
const (
	cellsX = 6
	cellsY = 2
)

// fadedAlpha is the opacity below which a sprite is drawn dimmed.
const fadedAlpha = 0.4

type glyph struct {
	text  string
	style tcell.Style
}

var unknownGlyph = glyph{text: "?", style: tcell.StyleDefault.Foreground(tcell.ColorFuchsia)}

// glyphsByID maps catalog ids to their terminal rendition.
var glyphsByID = map[string]glyph{
	"char-boy":           {"@", tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)},
	"char-cat-girl":      {"@", tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	"char-horn-girl":     {"@", tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)},
	"char-pink-girl":     {"@", tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true)},
	"char-princess-girl": {"@", tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)},
	"enemy-bug":          {"<##>", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)},
	"ladybag":            {"<%>", tcell.StyleDefault.Foreground(tcell.ColorMaroon).Bold(true)},
	"gem-blue":           {"◆", tcell.StyleDefault.Foreground(tcell.ColorBlue)},
	"gem-green":          {"◆", tcell.StyleDefault.Foreground(tcell.ColorLime)},
	"gem-orange":         {"◆", tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	"key":                {"k", tcell.StyleDefault.Foreground(tcell.ColorGold)},
	"star":               {"★", tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	"heart":              {"♥", tcell.StyleDefault.Foreground(tcell.ColorRed)},
}

type spriteInfo struct {
	w, h float64
	g    glyph
}

// Canvas is a game.Surface over a tcell screen. Pixel positions are mapped to
// cells by the centre of the sprite; sprites centred off the field are
// skipped.
type Canvas struct {
	screen  tcell.Screen
	grid    game.Grid
	sprites map[string]spriteInfo
	alpha   float64
	originX int
	originY int
}

// NewCanvas draws the field with its top-left cell at (originX, originY).
func NewCanvas(s tcell.Screen, g game.Grid, c game.Catalogs, originX, originY int) *Canvas {
	cv := &Canvas{
		screen:  s,
		grid:    g,
		sprites: map[string]spriteInfo{},
		alpha:   1,
		originX: originX,
		originY: originY,
	}
	add := func(r game.SpriteRecord) {
		gl, ok := glyphsByID[r.ID]
		if !ok {
			gl = unknownGlyph
		}
		cv.sprites[r.Sprite] = spriteInfo{w: r.Width, h: r.Height, g: gl}
	}
	for _, r := range c.Avatars {
		add(r)
	}
	for _, r := range c.Enemies {
		add(r)
	}
	for _, r := range c.Tokens {
		add(r.SpriteRecord)
	}
	return cv
}

// Cols and Rows are the size of the field in cells.
func (c *Canvas) Cols() int { return c.grid.Columns * cellsX }
func (c *Canvas) Rows() int { return c.grid.Rows * cellsY }

// SetAlpha implements game.Surface.
func (c *Canvas) SetAlpha(a float64) { c.alpha = a }

// Cell maps a sprite drawn at pixel (x, y) to the field cell under its centre.
func (c *Canvas) Cell(sprite string, x, y float64) (col, row int, ok bool) {
	info, found := c.sprites[sprite]
	if !found {
		return 0, 0, false
	}
	cx := x + info.w/2 - float64(c.grid.Left)
	cy := y + info.h/2 - float64(c.grid.TopOffset)
	col = int(math.Floor(cx / float64(c.grid.BlockWidth) * cellsX))
	row = int(math.Floor(cy / float64(c.grid.BlockHeight) * cellsY))
	if col < 0 || row < 0 || col >= c.Cols() || row >= c.Rows() {
		return 0, 0, false
	}
	return col, row, true
}

// DrawImage implements game.Surface. Wide glyphs are centred on the cell.
func (c *Canvas) DrawImage(sprite string, x, y float64) {
	col, row, ok := c.Cell(sprite, x, y)
	if !ok {
		return
	}
	gl := c.sprites[sprite].g
	st := gl.style.Background(rowColor(c.grid, row/cellsY))
	if c.alpha < fadedAlpha {
		st = st.Dim(true)
	}
	runes := []rune(gl.text)
	start := col - len(runes)/2
	for i, r := range runes {
		cx := start + i
		if cx < 0 || cx >= c.Cols() {
			continue
		}
		c.screen.SetContent(c.originX+cx, c.originY+row, r, nil, st)
	}
}

// DrawField paints the water, stone and grass rows.
func (c *Canvas) DrawField() {
	for row := 0; row < c.Rows(); row++ {
		st := tcell.StyleDefault.Background(rowColor(c.grid, row/cellsY))
		fill := ' '
		if row/cellsY == 0 {
			fill = '~'
			st = st.Foreground(tcell.ColorLightBlue)
		}
		for col := 0; col < c.Cols(); col++ {
			c.screen.SetContent(c.originX+col, c.originY+row, fill, nil, st)
		}
	}
}

// rowColor is the background of block row r: water on top, grass on the
// last two rows, stone in between.
func rowColor(g game.Grid, r int) tcell.Color {
	switch {
	case r == 0:
		return tcell.ColorNavy
	case r >= g.Rows-2:
		return tcell.ColorDarkGreen
	default:
		return tcell.ColorDimGray
	}
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func padRight(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}
	return s
}
