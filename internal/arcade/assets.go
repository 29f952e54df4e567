package arcade

import (
	"image/color"
	_ "image/png" // sprite decoder
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

// Background tiles, one per row kind. They are drawn at the top of each
// block and overhang it like the character sprites do.
const (
	tileWater = "images/water-block.png"
	tileStone = "images/stone-block.png"
	tileGrass = "images/grass-block.png"
)

// Tile dimensions and the transparent band above the visible top face.
const (
	tileHeight = 171
	tileInset  = 50
)

// placeholderColors tint the stand-in for each catalog id when its image is
// missing.
var placeholderColors = map[string]color.RGBA{
	"char-boy":           {R: 240, G: 240, B: 240, A: 255},
	"char-cat-girl":      {R: 240, G: 200, B: 80, A: 255},
	"char-horn-girl":     {R: 80, G: 210, B: 210, A: 255},
	"char-pink-girl":     {R: 240, G: 140, B: 190, A: 255},
	"char-princess-girl": {R: 170, G: 110, B: 220, A: 255},
	"enemy-bug":          {R: 200, G: 40, B: 40, A: 255},
	"ladybag":            {R: 150, G: 20, B: 30, A: 255},
	"gem-blue":           {R: 60, G: 110, B: 230, A: 255},
	"gem-green":          {R: 60, G: 200, B: 90, A: 255},
	"gem-orange":         {R: 240, G: 140, B: 40, A: 255},
	"key":                {R: 230, G: 200, B: 40, A: 255},
	"star":               {R: 250, G: 240, B: 90, A: 255},
	"heart":              {R: 230, G: 50, B: 80, A: 255},
}

var tileColors = map[string]color.RGBA{
	tileWater: {R: 40, G: 90, B: 200, A: 255},
	tileStone: {R: 120, G: 120, B: 125, A: 255},
	tileGrass: {R: 60, G: 150, B: 60, A: 255},
}

type spriteMeta struct {
	id   string
	w, h int
}

// Loader resolves sprite keys to images under a root directory and caches
// them. A sprite whose file cannot be read is replaced by a tinted block of
// its hit-zone size.
type Loader struct {
	root   string
	meta   map[string]spriteMeta
	cache  map[string]*ebiten.Image
	logger *log.Logger
}

// NewLoader indexes the catalog sprites. Images are read on first use.
func NewLoader(root string, g game.Grid, c game.Catalogs, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Loader{
		root:   root,
		meta:   map[string]spriteMeta{},
		cache:  map[string]*ebiten.Image{},
		logger: logger,
	}
	add := func(r game.SpriteRecord) {
		l.meta[r.Sprite] = spriteMeta{id: r.ID, w: int(r.Width), h: int(r.Height)}
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
	for _, t := range []string{tileWater, tileStone, tileGrass} {
		l.meta[t] = spriteMeta{id: t, w: g.BlockWidth, h: tileHeight}
	}
	return l
}

// Path is the file a sprite key is read from.
func (l *Loader) Path(sprite string) string {
	return filepath.Join(l.root, filepath.FromSlash(sprite))
}

// Image returns the image for sprite, loading it on first use.
func (l *Loader) Image(sprite string) *ebiten.Image {
	if img, ok := l.cache[sprite]; ok {
		return img
	}
	img, _, err := ebitenutil.NewImageFromFile(l.Path(sprite))
	if err != nil {
		l.logger.Warn("sprite missing, using placeholder", "sprite", sprite, "err", err)
		img = l.placeholder(sprite)
	}
	l.cache[sprite] = img
	return img
}

func (l *Loader) placeholder(sprite string) *ebiten.Image {
	m, ok := l.meta[sprite]
	if !ok {
		m = spriteMeta{id: sprite, w: 32, h: 32}
	}
	img := ebiten.NewImage(max(m.w, 1), max(m.h, 1))
	if c, ok := tileColors[sprite]; ok {
		vector.FillRect(img, 0, tileInset, float32(m.w), float32(m.h-tileInset), c, false)
		return img
	}
	c, ok := placeholderColors[m.id]
	if !ok {
		c = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
	img.Fill(c)
	return img
}

// rowTile is the background tile of block row r: water on top, grass on
// the last two rows, stone in between.
func rowTile(g game.Grid, r int) string {
	switch {
	case r == 0:
		return tileWater
	case r >= g.Rows-2:
		return tileGrass
	default:
		return tileStone
	}
}
