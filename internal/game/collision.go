package game

// BoundingBox is the axis-aligned hit zone of a piece.
type BoundingBox struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Overlaps reports whether a and b intersect. The inequalities are strict so
// boxes that merely share an edge do not collide. A nil box never collides.
func Overlaps(a, b *BoundingBox) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Left < b.Right &&
		a.Right > b.Left &&
		a.Top < b.Bottom &&
		a.Bottom > b.Top
}
