package game

import (
	"errors"
	"testing"
)

func TestCatalogs_Validate(t *testing.T) {
	if err := DefaultCatalogs().Validate(); err != nil {
		t.Fatalf("default catalogs invalid: %v", err)
	}

	c := DefaultCatalogs()
	c.Enemies = nil
	if err := c.Validate(); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}

	c = DefaultCatalogs()
	c.Tokens = []TokenRecord{{SpriteRecord: SpriteRecord{ID: "t", Width: 1, Height: 1}, Weight: 0}}
	if err := c.Validate(); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight, got %v", err)
	}

	c = DefaultCatalogs()
	c.Avatars = []SpriteRecord{{ID: "flat", Width: 10, Height: 0}}
	if err := c.Validate(); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestCatalogs_FindAvatar(t *testing.T) {
	c := DefaultCatalogs()
	a, ok := c.FindAvatar("char-cat-girl")
	if !ok || a.Width != 68 || a.Height != 76 {
		t.Fatalf("FindAvatar(char-cat-girl) = %+v, %v", a, ok)
	}
	if _, ok := c.FindAvatar(""); ok {
		t.Fatal("empty id must not match")
	}
}
