// Package rules holds the movement predicates of each piece kind.
//
// A predicate answers only the geometry and path-obstruction question for the
// piece standing on the origin square. Bounds, turn order and the color of the
// destination occupant are checked by the caller. Predicates never modify the
// board.
package rules

import (
	"koth/internal/board"
	"koth/internal/core"
)

// IsLegal reports whether the piece on from may move to to
func IsLegal(b *board.Board, from, to board.Square) bool {
	p := b.At(from)
	switch p.Kind {
	case core.KindPawn:
		return pawnMove(b, p, from, to)
	case core.KindRook:
		return rookMove(b, from, to)
	case core.KindKnight:
		return knightMove(from, to)
	case core.KindBishop:
		return bishopMove(b, from, to)
	case core.KindQueen:
		return queenMove(b, from, to)
	case core.KindKing:
		return kingMove(from, to)
	default:
		return false
	}
}

func delta(from, to board.Square) (dx, dy int) {
	return to.Col - from.Col, to.Row - from.Row
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// pathClear checks the squares strictly between from and to along a straight
// or diagonal line. The endpoints are never inspected.
func pathClear(b *board.Board, from, to board.Square) bool {
	dx, dy := delta(from, to)
	stepX, stepY := sign(dx), sign(dy)

	sq := board.Square{Col: from.Col + stepX, Row: from.Row + stepY}
	for sq != to {
		if !b.IsEmpty(sq) {
			return false
		}
		sq.Col += stepX
		sq.Row += stepY
	}
	return true
}
