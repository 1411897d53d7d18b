package game

import "errors"

// Validation failures from the pure card/marking functions. Anti-cheat
// rejections are returned to the acting player and never end the round.
var (
	ErrInsufficientPool = errors.New("need at least 24 unique images to generate a card")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrAlreadyMarked    = errors.New("already marked")
	ErrNotCalledYet     = errors.New("not called yet")
)
