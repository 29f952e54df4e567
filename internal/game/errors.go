package game

import "errors"

// Configuration errors. Constructors wrap these with context; test with errors.Is.
var (
	ErrEmptyCatalog  = errors.New("catalog is empty")
	ErrInvalidRange  = errors.New("invalid range")
	ErrInvalidWeight = errors.New("catalog weight must be positive")
	ErrInvalidSize   = errors.New("sprite size must be positive")
)
