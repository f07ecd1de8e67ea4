package game

import "errors"

var (
	ErrEmptyMove   = errors.New("empty move")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game over")
)
