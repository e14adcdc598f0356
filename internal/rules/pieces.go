package rules

import (
	"koth/internal/board"
	"koth/internal/core"
)

// pawnMove covers single and double advances and diagonal captures.
// White moves toward row 0, black toward row 7.
func pawnMove(b *board.Board, p board.Piece, from, to board.Square) bool {
	dx, dy := delta(from, to)

	if abs(dx) > 1 {
		return false
	}
	if abs(dy) == 2 && dx != 0 {
		return false
	}
	// Diagonal steps only capture
	if abs(dx) == 1 && b.IsEmpty(to) {
		return false
	}

	forward := -1
	if p.Color == core.ColorBlack {
		forward = 1
	}
	switch dy {
	case forward:
	case 2 * forward:
		if p.Moved {
			return false
		}
	default:
		return false
	}

	if dx == 0 {
		// Straight advances never capture
		if !b.IsEmpty(to) {
			return false
		}
		return pathClear(b, from, to)
	}
	return true
}

func rookMove(b *board.Board, from, to board.Square) bool {
	dx, dy := delta(from, to)
	if (dx == 0) == (dy == 0) {
		return false
	}
	return pathClear(b, from, to)
}

func knightMove(from, to board.Square) bool {
	dx, dy := delta(from, to)
	return dx*dx+dy*dy == 5
}

func bishopMove(b *board.Board, from, to board.Square) bool {
	dx, dy := delta(from, to)
	if dx == 0 || abs(dx) != abs(dy) {
		return false
	}
	return pathClear(b, from, to)
}

func queenMove(b *board.Board, from, to board.Square) bool {
	return rookMove(b, from, to) || bishopMove(b, from, to)
}

// kingMove accepts any single step. The null move also passes here and is
// rejected by the engine before rules are consulted.
func kingMove(from, to board.Square) bool {
	dx, dy := delta(from, to)
	return abs(dx) <= 1 && abs(dy) <= 1
}
