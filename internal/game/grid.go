package game

import (
	"fmt"
	"math/rand"
)

// Default field geometry. Blocks are the stone, grass and water tiles the
// field is drawn from; the top offset is the transparent strip above each tile.
const (
	DefaultBlockWidth  = 101
	DefaultBlockHeight = 83
	DefaultTopOffset   = 50
	DefaultFieldLeft   = 0
	DefaultFieldRight  = 400
	DefaultFieldBottom = 400
	DefaultColumns     = 5
	DefaultRows        = 6
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// Validate reports ErrInvalidRange when Max < Min.
func (r Range) Validate(name string) error {
	if r.Max < r.Min {
		return fmt.Errorf("%s [%d..%d]: %w", name, r.Min, r.Max, ErrInvalidRange)
	}
	return nil
}

// Roll draws a fresh value from r.
func (r Range) Roll(rng *rand.Rand) int {
	return RandomInteger(rng, r.Min, r.Max)
}

// RandomInteger returns a uniformly distributed integer in [min, max].
// It panics when max < min; ranges are validated before they reach here.
func RandomInteger(rng *rand.Rand, min, max int) int {
	if max < min {
		panic(fmt.Sprintf("game: RandomInteger(%d, %d): max < min", min, max))
	}
	return rng.Intn(max-min+1) + min
}

// Grid is the shared coordinate system every piece is placed on.
// Columns are BlockWidth wide starting at x=0; rows are BlockHeight tall
// starting at TopOffset.
type Grid struct {
	BlockWidth  int
	BlockHeight int
	TopOffset   int
	Left        int
	Right       int
	Bottom      int
	Columns     int // drawn columns, used by frontends for the backdrop
	Rows        int // drawn rows, row 0 is the water, the last rows are grass
}

// DefaultGrid returns the classic 5x6 field.
func DefaultGrid() Grid {
	return Grid{
		BlockWidth:  DefaultBlockWidth,
		BlockHeight: DefaultBlockHeight,
		TopOffset:   DefaultTopOffset,
		Left:        DefaultFieldLeft,
		Right:       DefaultFieldRight,
		Bottom:      DefaultFieldBottom,
		Columns:     DefaultColumns,
		Rows:        DefaultRows,
	}
}

// Top is the y coordinate of the safe-zone boundary.
func (g Grid) Top() float64 { return float64(g.TopOffset) }

// Validate rejects non-positive block sizes and inverted bounds.
func (g Grid) Validate() error {
	if g.BlockWidth <= 0 || g.BlockHeight <= 0 {
		return fmt.Errorf("grid block %dx%d: %w", g.BlockWidth, g.BlockHeight, ErrInvalidRange)
	}
	if g.Right <= g.Left {
		return fmt.Errorf("grid horizontal bounds [%d..%d]: %w", g.Left, g.Right, ErrInvalidRange)
	}
	if g.Bottom <= g.TopOffset {
		return fmt.Errorf("grid vertical bounds [%d..%d]: %w", g.TopOffset, g.Bottom, ErrInvalidRange)
	}
	if g.Columns <= 0 || g.Rows <= 0 {
		return fmt.Errorf("grid %dx%d cells: %w", g.Columns, g.Rows, ErrInvalidRange)
	}
	return nil
}

// ColumnX returns the x that centres a piece of the given width in column col.
func (g Grid) ColumnX(col int, width float64) float64 {
	bw := float64(g.BlockWidth)
	return float64(col)*bw + (bw-width)/2
}

// RowY returns the y that centres a piece of the given height in row row.
func (g Grid) RowY(row int, height float64) float64 {
	bh := float64(g.BlockHeight)
	return float64(g.TopOffset) + float64(row)*bh + (bh-height)/2
}

// PlaceOnColumn centres a piece horizontally in a column drawn from
// [colMin, colMax]. Negative columns lie west of the field.
func (g Grid) PlaceOnColumn(rng *rand.Rand, colMin, colMax int, width float64) float64 {
	return g.ColumnX(RandomInteger(rng, colMin, colMax), width)
}

// PlaceOnRow centres a piece vertically in a row drawn from [rowMin, rowMax].
func (g Grid) PlaceOnRow(rng *rand.Rand, rowMin, rowMax int, height float64) float64 {
	return g.RowY(RandomInteger(rng, rowMin, rowMax), height)
}

// Width and Height are the pixel size of the drawn field.
func (g Grid) Width() int  { return g.Columns * g.BlockWidth }
func (g Grid) Height() int { return g.TopOffset + g.Rows*g.BlockHeight }
