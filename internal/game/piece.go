package game

// SpriteRecord is one catalog entry: an opaque sprite key and the size of its
// hit zone. Heights exclude the drop shadow baked into the images.
type SpriteRecord struct {
	ID     string
	Sprite string
	Width  float64
	Height float64
}

// Piece is the position, size and hit zone shared by every entity on the field.
// It is embedded by Enemy, Player and Token.
type Piece struct {
	Sprite string
	Width  float64
	Height float64
	X      float64
	Y      float64

	box *BoundingBox // nil until ComputeBoundingBox runs
}

// Place binds the sprite and size of rec to the piece.
func (p *Piece) Place(rec SpriteRecord) {
	p.Sprite = rec.Sprite
	p.Width = rec.Width
	p.Height = rec.Height
}

// ComputeBoundingBox rebuilds the hit zone from the current position and size.
func (p *Piece) ComputeBoundingBox() {
	if p.box == nil {
		p.box = &BoundingBox{}
	}
	p.box.Top = p.Y
	p.box.Left = p.X
	p.box.Bottom = p.Y + p.Height
	p.box.Right = p.X + p.Width
}

// BoundingBox returns a copy of the last computed hit zone and false if it has
// never been computed.
func (p *Piece) BoundingBox() (BoundingBox, bool) {
	if p.box == nil {
		return BoundingBox{}, false
	}
	return *p.box, true
}

// MoveTo sets the position and recomputes the hit zone.
func (p *Piece) MoveTo(x, y float64) {
	p.X = x
	p.Y = y
	p.ComputeBoundingBox()
}

// Render draws the piece at its current position.
func (p *Piece) Render(s Surface) {
	s.DrawImage(p.Sprite, p.X, p.Y)
}

// CollidesWith tests the two last-computed hit zones.
func (p *Piece) CollidesWith(other *Piece) bool {
	if other == nil {
		return false
	}
	return Overlaps(p.box, other.box)
}
