package game

import (
	"errors"

	"koth/internal/board"
)

// Move rejections. Every rejection leaves the game untouched.
var (
	ErrMalformedSquare = board.ErrMalformedSquare
	ErrOutOfBounds     = board.ErrOutOfBounds
	ErrNullMove        = errors.New("origin and destination are the same square")
	ErrGameOver        = errors.New("game is over")
	ErrEmptyOrigin     = errors.New("no piece on origin square")
	ErrWrongMover      = errors.New("piece belongs to the other player")
	ErrFriendlyCapture = errors.New("destination holds a piece of the same color")
	ErrIllegalMove     = errors.New("illegal move for piece")
)
