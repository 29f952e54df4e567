package game

import (
	"fmt"
	"math/rand"
)

// TokenRecord is a collectible variant. Points and Lives are banked on the
// player when collected; Weight sets how often the variant is drawn.
type TokenRecord struct {
	SpriteRecord
	Points int
	Lives  int
	Weight int
}

// Catalogs groups the variant lists pieces are drawn from at reset.
type Catalogs struct {
	Avatars []SpriteRecord
	Enemies []SpriteRecord
	Tokens  []TokenRecord
}

// DefaultAvatars are the selectable player characters.
var DefaultAvatars = []SpriteRecord{
	{ID: "char-boy", Sprite: "images/char-boy.png", Width: 67, Height: 77},
	{ID: "char-cat-girl", Sprite: "images/char-cat-girl.png", Width: 68, Height: 76},
	{ID: "char-horn-girl", Sprite: "images/char-horn-girl.png", Width: 67, Height: 77},
	{ID: "char-pink-girl", Sprite: "images/char-pink-girl.png", Width: 68, Height: 76},
	{ID: "char-princess-girl", Sprite: "images/char-princess-girl.png", Width: 68, Height: 78},
}

// DefaultEnemies are the lane crossers.
var DefaultEnemies = []SpriteRecord{
	{ID: "enemy-bug", Sprite: "images/enemy-bug.png", Width: 99, Height: 66},
	{ID: "ladybag", Sprite: "images/ladybag.png", Width: 63, Height: 66},
}

// DefaultTokens favours the low-value gems; the heart carries its own weight.
var DefaultTokens = []TokenRecord{
	{SpriteRecord: SpriteRecord{ID: "gem-blue", Sprite: "images/Gem Blue.png", Width: 50, Height: 54}, Points: 2, Weight: 8},
	{SpriteRecord: SpriteRecord{ID: "gem-green", Sprite: "images/Gem Green.png", Width: 50, Height: 54}, Points: 4, Weight: 5},
	{SpriteRecord: SpriteRecord{ID: "gem-orange", Sprite: "images/Gem Orange.png", Width: 50, Height: 54}, Points: 8, Weight: 3},
	{SpriteRecord: SpriteRecord{ID: "key", Sprite: "images/Key.png", Width: 50, Height: 50}, Points: 16, Weight: 2},
	{SpriteRecord: SpriteRecord{ID: "star", Sprite: "images/Star.png", Width: 29, Height: 42}, Points: 32, Weight: 1},
	{SpriteRecord: SpriteRecord{ID: "heart", Sprite: "images/Heart.png", Width: 45, Height: 45}, Lives: 1, Weight: 2},
}

// DefaultCatalogs returns the built-in variant lists.
func DefaultCatalogs() Catalogs {
	return Catalogs{
		Avatars: DefaultAvatars,
		Enemies: DefaultEnemies,
		Tokens:  DefaultTokens,
	}
}

// Validate rejects empty catalogs, non-positive sizes and weights.
func (c Catalogs) Validate() error {
	if err := validateSprites("avatar", c.Avatars); err != nil {
		return err
	}
	if err := validateSprites("enemy", c.Enemies); err != nil {
		return err
	}
	if len(c.Tokens) == 0 {
		return fmt.Errorf("token catalog: %w", ErrEmptyCatalog)
	}
	for i, t := range c.Tokens {
		if err := validateSprite("token", i, t.SpriteRecord); err != nil {
			return err
		}
		if t.Weight <= 0 {
			return fmt.Errorf("token catalog entry %d (%s) weight %d: %w", i, t.ID, t.Weight, ErrInvalidWeight)
		}
	}
	return nil
}

func validateSprites(name string, recs []SpriteRecord) error {
	if len(recs) == 0 {
		return fmt.Errorf("%s catalog: %w", name, ErrEmptyCatalog)
	}
	for i, r := range recs {
		if err := validateSprite(name, i, r); err != nil {
			return err
		}
	}
	return nil
}

func validateSprite(name string, i int, r SpriteRecord) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%s catalog entry %d (%s) %vx%v: %w", name, i, r.ID, r.Width, r.Height, ErrInvalidSize)
	}
	return nil
}

// FindAvatar looks an avatar up by id.
func (c Catalogs) FindAvatar(id string) (SpriteRecord, bool) {
	for _, a := range c.Avatars {
		if a.ID == id {
			return a, true
		}
	}
	return SpriteRecord{}, false
}

func pickSprite(rng *rand.Rand, recs []SpriteRecord) SpriteRecord {
	return recs[RandomInteger(rng, 0, len(recs)-1)]
}

// pickToken draws a record with probability proportional to its weight.
func pickToken(rng *rand.Rand, recs []TokenRecord) TokenRecord {
	total := 0
	for _, r := range recs {
		total += r.Weight
	}
	n := RandomInteger(rng, 1, total)
	for _, r := range recs {
		n -= r.Weight
		if n <= 0 {
			return r
		}
	}
	return recs[len(recs)-1]
}
