package arcade

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// screenSurface draws game sprites onto an ebiten image.
type screenSurface struct {
	dst    *ebiten.Image
	loader *Loader
	alpha  float64
}

func newScreenSurface(dst *ebiten.Image, l *Loader) *screenSurface {
	return &screenSurface{dst: dst, loader: l, alpha: 1}
}

func (s *screenSurface) SetAlpha(a float64) { s.alpha = a }

func (s *screenSurface) DrawImage(sprite string, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(s.alpha))
	s.dst.DrawImage(s.loader.Image(sprite), op)
}
